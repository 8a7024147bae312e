package kafka

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"courier-payouts/internal/service/deliveries"
)

// EventDTO is the wire form of an order-fulfillment event.
// shipping_cost is accepted both as a JSON string and as a JSON number.
type EventDTO struct {
	OrderID         string          `json:"order_id"`
	CourierID       int64           `json:"courier_id"`
	Status          string          `json:"status"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	DeliveryAddress string          `json:"delivery_address"`
	DeliveredAt     time.Time       `json:"delivered_at"`
}

// ToDomain converts EventDTO to deliveries.Event
func ToDomain(dto EventDTO) deliveries.Event {
	return deliveries.Event{
		OrderID:         strings.TrimSpace(dto.OrderID),
		CourierID:       dto.CourierID,
		Status:          strings.TrimSpace(dto.Status),
		ShippingCost:    dto.ShippingCost,
		DeliveryAddress: strings.TrimSpace(dto.DeliveryAddress),
		DeliveredAt:     dto.DeliveredAt,
	}
}
