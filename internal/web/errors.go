package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nikolayk812/codemarket/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, invalidInputMessage(err)
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "project not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrGatewayNotConfigured):
		return http.StatusInternalServerError, "payment provider is not configured"
	case errors.Is(err, domain.ErrPaymentGateway):
		return http.StatusBadGateway, "payment provider is unavailable, please try again"
	case errors.Is(err, domain.ErrWebhookIntegrity):
		return http.StatusBadRequest, "webhook verification failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// invalidInputMessage drops the call chain wrapped around the validation error,
// keeping "invalid input: <reason>".
func invalidInputMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidInput.Error()); i >= 0 {
		return msg[i:]
	}
	return domain.ErrInvalidInput.Error()
}

// writeError responds with a JSON error body. Unmapped errors are logged and
// never shown to the client.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, method string, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			"method", method,
			"path", r.URL.Path,
			"error", err)
	}

	writeJSON(w, status, errorResponse{Error: msg})
}
