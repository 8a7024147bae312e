package handlers

import (
	"net/http"

	"courier-payouts/internal/logx"
)

// BalanceHandler serves reconciled balances.
type BalanceHandler struct {
	logger     logx.Logger
	reconciler balanceUsecase
	summary    summaryUsecase
}

// NewBalanceHandler wires the reconciler and the summary into HTTP handlers.
func NewBalanceHandler(logger logx.Logger, reconciler balanceUsecase, summary summaryUsecase) *BalanceHandler {
	return &BalanceHandler{logger: logger, reconciler: reconciler, summary: summary}
}

// Get handles GET /couriers/{id}/balance. ?details=true includes the underlying records.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeErrorBody(h.logger, w, r, http.StatusBadRequest, errResponse{Error: "invalid id", Field: "courier_id"})
		return
	}

	b, err := h.reconciler.Reconcile(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, balanceToResponse(b, r.URL.Query().Get("details") == "true"))
}

// Summary handles GET /balances.
func (h *BalanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	list, err := h.summary.Summary(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	out := make([]balanceDTO, 0, len(list))
	for _, b := range list {
		out = append(out, balanceToResponse(b, false))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}
