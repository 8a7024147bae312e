package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutMethod is how money was handed to a courier.
type PayoutMethod string

// Known payout methods.
const (
	MethodCash         PayoutMethod = "cash"
	MethodBankTransfer PayoutMethod = "bank_transfer"
	MethodDeposit      PayoutMethod = "deposit"
	MethodCheck        PayoutMethod = "check"
	MethodOther        PayoutMethod = "other"
)

var allowedMethods = [...]PayoutMethod{
	MethodCash, MethodBankTransfer, MethodDeposit, MethodCheck, MethodOther,
}

// Valid checks if the PayoutMethod is one of the known methods.
func (m PayoutMethod) Valid() bool {
	for _, v := range allowedMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Payout is a single append-only ledger entry: money paid to a courier.
type Payout struct {
	ID        uuid.UUID
	CourierID int64
	Amount    decimal.Decimal
	PaidAt    time.Time
	Method    PayoutMethod
	Reference string
	Notes     string
}

// NewPayout is the input for recording a payout.
type NewPayout struct {
	CourierID int64
	Amount    decimal.Decimal
	Method    PayoutMethod
	Reference string
	Notes     string
}

// PayoutHistory lists a courier's payouts, most recent first, with their total.
type PayoutHistory struct {
	CourierID int64
	Records   []Payout
	TotalPaid decimal.Decimal
}

// SumPayouts totals the amounts of the given payouts.
func SumPayouts(payouts []Payout) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payouts {
		total = total.Add(p.Amount)
	}
	return total
}
