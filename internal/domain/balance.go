package domain

import "github.com/shopspring/decimal"

// BalanceStatus classifies the sign of a courier balance.
type BalanceStatus string

// Balance classifications.
const (
	BalancePending  BalanceStatus = "pending"
	BalanceOverpaid BalanceStatus = "overpaid"
	BalanceSettled  BalanceStatus = "settled"
)

// MoneyScale is the number of fraction digits monetary values carry.
const MoneyScale = 2

// CourierBalance is derived on demand from earnings and payouts; it is never stored.
type CourierBalance struct {
	CourierID   int64
	TotalEarned decimal.Decimal
	TotalPaid   decimal.Decimal
	Balance     decimal.Decimal
	Status      BalanceStatus
	Deliveries  []DeliveredOrder
	Payouts     []Payout
}

// ClassifyBalance maps a balance to its status: positive means the courier is still owed money.
func ClassifyBalance(balance decimal.Decimal) BalanceStatus {
	switch balance.Sign() {
	case 1:
		return BalancePending
	case -1:
		return BalanceOverpaid
	default:
		return BalanceSettled
	}
}

// NewCourierBalance reconciles earnings against payouts.
func NewCourierBalance(e Earnings, p PayoutHistory) CourierBalance {
	bal := e.TotalEarned.Sub(p.TotalPaid)
	return CourierBalance{
		CourierID:   e.CourierID,
		TotalEarned: e.TotalEarned,
		TotalPaid:   p.TotalPaid,
		Balance:     bal,
		Status:      ClassifyBalance(bal),
		Deliveries:  e.Records,
		Payouts:     p.Records,
	}
}

// FormatMoney renders an amount with two fraction digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

// HasCentPrecision reports whether d has at most two fraction digits.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
