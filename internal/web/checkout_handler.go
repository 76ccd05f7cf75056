package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/nikolayk812/codemarket/internal/auth"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/payment"
)

// maxWebhookBody bounds a webhook delivery. Event payloads carry the full
// session object, so the limit leaves ample headroom.
const maxWebhookBody = 1 << 20

// handleCheckout is a form action: anonymous buyers are sent to the login page
// and a created session answers with 303 to the hosted payment page.
func (h *handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !user.IsAuthenticated() {
		http.Redirect(w, r, h.loginPath, http.StatusSeeOther)
		return
	}

	in := domain.CheckoutInput{ProjectID: r.PostFormValue("projectId")}

	url, err := h.checkout.BuyProject(r.Context(), user, in)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationRequired) {
			http.Redirect(w, r, h.loginPath, http.StatusSeeOther)
			return
		}
		h.writeError(w, r, "handler.handleCheckout", err)
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

// handleWebhook answers the gateway with plain text: an empty 200 once the
// purchase is durable, 400 for deliveries that failed verification and 500
// when storage failed so that the gateway retries.
func (h *handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Error("webhook body too large",
				"method", "handler.handleWebhook",
				"limit", tooLarge.Limit)
			http.Error(w, "webhook error: body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "webhook error: unreadable body", http.StatusBadRequest)
		return
	}

	_, err = h.fulfillment.HandleWebhook(r.Context(), payload, r.Header.Get(payment.SignatureHeader))
	if err != nil {
		if errors.Is(err, domain.ErrWebhookIntegrity) {
			http.Error(w, "webhook error: verification failed", http.StatusBadRequest)
			return
		}

		h.log.Error("webhook not processed",
			"method", "handler.handleWebhook",
			"error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
