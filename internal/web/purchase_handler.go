package web

import (
	"net/http"

	"github.com/nikolayk812/codemarket/internal/auth"
)

func (h *handler) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchases.ListPurchases(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, "handler.handleListPurchases", err)
		return
	}

	writeJSON(w, http.StatusOK, toPurchaseResponses(purchases))
}
