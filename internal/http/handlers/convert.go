package handlers

import "courier-payouts/internal/domain"

func (req createCourierRequest) toModel() *domain.Courier {
	return &domain.Courier{
		FullName:      req.FullName,
		Phone:         req.Phone,
		TransportType: req.TransportType,
	}
}

func (req updateCourierRequest) toModel() domain.PartialCourierUpdate {
	return domain.PartialCourierUpdate{
		ID:            req.ID,
		FullName:      req.FullName,
		Phone:         req.Phone,
		TransportType: req.TransportType,
	}
}

func (req recordPayoutRequest) toModel(courierID int64) domain.NewPayout {
	return domain.NewPayout{
		CourierID: courierID,
		Amount:    *req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
}

func courierToResponse(c domain.Courier) courierDTO {
	return courierDTO{
		ID:            c.ID,
		FullName:      c.FullName,
		Phone:         c.Phone,
		TransportType: c.TransportType,
		CreatedAt:     c.CreatedAt,
	}
}

func couriersToResponse(list []domain.Courier) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, courierToResponse(c))
	}
	return out
}

func ordersToResponse(list []domain.DeliveredOrder) []deliveredOrderDTO {
	out := make([]deliveredOrderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, deliveredOrderDTO{
			OrderID:         o.OrderID,
			ShippingCost:    domain.FormatMoney(o.ShippingCost),
			DeliveredAt:     o.DeliveredAt,
			DeliveryAddress: o.DeliveryAddress,
		})
	}
	return out
}

func payoutToResponse(p domain.Payout) payoutDTO {
	return payoutDTO{
		ID:        p.ID.String(),
		CourierID: p.CourierID,
		Amount:    domain.FormatMoney(p.Amount),
		PaidAt:    p.PaidAt,
		Method:    p.Method,
		Reference: p.Reference,
		Notes:     p.Notes,
	}
}

func payoutsToResponse(list []domain.Payout) []payoutDTO {
	out := make([]payoutDTO, 0, len(list))
	for _, p := range list {
		out = append(out, payoutToResponse(p))
	}
	return out
}

func earningsToResponse(e domain.Earnings) earningsDTO {
	return earningsDTO{
		CourierID:   e.CourierID,
		TotalEarned: domain.FormatMoney(e.TotalEarned),
		Records:     ordersToResponse(e.Records),
	}
}

func historyToResponse(h domain.PayoutHistory) payoutHistoryDTO {
	return payoutHistoryDTO{
		CourierID: h.CourierID,
		TotalPaid: domain.FormatMoney(h.TotalPaid),
		Records:   payoutsToResponse(h.Records),
	}
}

func balanceToResponse(b domain.CourierBalance, withRecords bool) balanceDTO {
	out := balanceDTO{
		CourierID:   b.CourierID,
		TotalEarned: domain.FormatMoney(b.TotalEarned),
		TotalPaid:   domain.FormatMoney(b.TotalPaid),
		Balance:     domain.FormatMoney(b.Balance),
		Status:      b.Status,
	}
	if withRecords {
		out.Deliveries = ordersToResponse(b.Deliveries)
		out.Payouts = payoutsToResponse(b.Payouts)
	}
	return out
}
