package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveredOrder is one delivery a courier completed. The shipping cost is what the courier
// earns for it. Rows are produced by the fulfillment stream and never changed afterwards.
type DeliveredOrder struct {
	ID              int64
	CourierID       int64
	OrderID         string
	ShippingCost    decimal.Decimal
	DeliveredAt     time.Time
	DeliveryAddress string
}

// Earnings is the aggregated view of a courier's delivered orders, most recent first.
type Earnings struct {
	CourierID   int64
	Records     []DeliveredOrder
	TotalEarned decimal.Decimal
}

// SumShipping totals the shipping cost of the given orders.
func SumShipping(orders []DeliveredOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.ShippingCost)
	}
	return total
}
