package handlers

import (
	"net/http"

	"courier-payouts/internal/logx"
)

// PayoutHandler serves the payout ledger.
type PayoutHandler struct {
	logger logx.Logger
	uc     ledgerUsecase
}

// NewPayoutHandler wires the ledger into HTTP handlers.
func NewPayoutHandler(logger logx.Logger, uc ledgerUsecase) *PayoutHandler {
	return &PayoutHandler{logger: logger, uc: uc}
}

// List handles GET /couriers/{id}/payouts.
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeErrorBody(h.logger, w, r, http.StatusBadRequest, errResponse{Error: "invalid id", Field: "courier_id"})
		return
	}

	hist, err := h.uc.ListPayouts(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, historyToResponse(hist))
}

// Record handles POST /couriers/{id}/payouts. A 5xx answer with payout_id means the
// write may or may not have committed; clients check the list before resubmitting.
func (h *PayoutHandler) Record(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeErrorBody(h.logger, w, r, http.StatusBadRequest, errResponse{Error: "invalid id", Field: "courier_id"})
		return
	}

	var req recordPayoutRequest
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	p, err := h.uc.RecordPayout(r.Context(), req.toModel(id))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"/"+p.ID.String())
	writeJSON(h.logger, w, r, http.StatusCreated, payoutToResponse(p))
}
