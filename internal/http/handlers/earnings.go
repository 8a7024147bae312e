package handlers

import (
	"net/http"

	"courier-payouts/internal/logx"
)

// EarningsHandler serves a courier's delivered orders and their total.
type EarningsHandler struct {
	logger logx.Logger
	uc     earningsUsecase
}

// NewEarningsHandler wires the earnings aggregator into HTTP handlers.
func NewEarningsHandler(logger logx.Logger, uc earningsUsecase) *EarningsHandler {
	return &EarningsHandler{logger: logger, uc: uc}
}

// Get handles GET /couriers/{id}/earnings.
func (h *EarningsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeErrorBody(h.logger, w, r, http.StatusBadRequest, errResponse{Error: "invalid id", Field: "courier_id"})
		return
	}

	e, err := h.uc.GetEarnings(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, earningsToResponse(e))
}
