package deliveries

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a single order-fulfillment event
type Event struct {
	OrderID         string
	CourierID       int64
	Status          string
	ShippingCost    decimal.Decimal
	DeliveryAddress string
	DeliveredAt     time.Time
}
