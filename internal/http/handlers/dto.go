package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"courier-payouts/internal/domain"
)

type courierDTO struct {
	ID            int64                `json:"id"`
	FullName      string               `json:"full_name"`
	Phone         string               `json:"phone,omitempty"`
	TransportType domain.TransportType `json:"transport_type"`
	CreatedAt     time.Time            `json:"created_at"`
}

type createCourierRequest struct {
	FullName      string               `json:"full_name" validate:"required,max=200"`
	Phone         string               `json:"phone"`
	TransportType domain.TransportType `json:"transport_type"`
}

type updateCourierRequest struct {
	ID            int64                 `json:"id" validate:"required,gt=0"`
	FullName      *string               `json:"full_name,omitempty"`
	Phone         *string               `json:"phone,omitempty"`
	TransportType *domain.TransportType `json:"transport_type,omitempty"`
}

// Money fields are rendered as strings with two fraction digits.
type deliveredOrderDTO struct {
	OrderID         string    `json:"order_id"`
	ShippingCost    string    `json:"shipping_cost"`
	DeliveredAt     time.Time `json:"delivered_at"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
}

type earningsDTO struct {
	CourierID   int64               `json:"courier_id"`
	TotalEarned string              `json:"total_earned"`
	Records     []deliveredOrderDTO `json:"records"`
}

type payoutDTO struct {
	ID        string              `json:"id"`
	CourierID int64               `json:"courier_id"`
	Amount    string              `json:"amount"`
	PaidAt    time.Time           `json:"paid_at"`
	Method    domain.PayoutMethod `json:"method"`
	Reference string              `json:"reference,omitempty"`
	Notes     string              `json:"notes,omitempty"`
}

type payoutHistoryDTO struct {
	CourierID int64       `json:"courier_id"`
	TotalPaid string      `json:"total_paid"`
	Records   []payoutDTO `json:"records"`
}

// Amount accepts both JSON numbers and strings; decimal parses either without float rounding.
type recordPayoutRequest struct {
	Amount    *decimal.Decimal    `json:"amount" validate:"required"`
	Method    domain.PayoutMethod `json:"method" validate:"required"`
	Reference string              `json:"reference"`
	Notes     string              `json:"notes"`
}

type balanceDTO struct {
	CourierID   int64                `json:"courier_id"`
	TotalEarned string               `json:"total_earned"`
	TotalPaid   string               `json:"total_paid"`
	Balance     string               `json:"balance"`
	Status      domain.BalanceStatus `json:"status"`
	Deliveries  []deliveredOrderDTO  `json:"deliveries,omitempty"`
	Payouts     []payoutDTO          `json:"payouts,omitempty"`
}
