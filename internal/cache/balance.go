package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courier-payouts/internal/domain"
)

type byteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
	SetIfEqual(ctx context.Context, guardKey string, want int64, key string, value []byte, ttl time.Duration) (bool, error)
}

const (
	balanceKeyPrefix    = "courier-payouts:balance:"
	generationKeyPrefix = "courier-payouts:balance-gen:"
)

// BalanceCache stores reconciled balances as JSON documents.
type BalanceCache struct {
	store byteStore
}

// NewBalanceCache creates a BalanceCache over store.
func NewBalanceCache(store byteStore) *BalanceCache {
	return &BalanceCache{store: store}
}

func balanceKey(courierID int64) string {
	return balanceKeyPrefix + strconv.FormatInt(courierID, 10)
}

func generationKey(courierID int64) string {
	return generationKeyPrefix + strconv.FormatInt(courierID, 10)
}

type orderDoc struct {
	ID              int64           `json:"id"`
	OrderID         string          `json:"order_id"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	DeliveredAt     time.Time       `json:"delivered_at"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
}

type payoutDoc struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

type balanceDoc struct {
	CourierID   int64           `json:"courier_id"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
	Deliveries  []orderDoc      `json:"deliveries"`
	Payouts     []payoutDoc     `json:"payouts"`
}

func toDoc(b domain.CourierBalance) balanceDoc {
	doc := balanceDoc{
		CourierID:   b.CourierID,
		TotalEarned: b.TotalEarned,
		TotalPaid:   b.TotalPaid,
		Balance:     b.Balance,
		Status:      string(b.Status),
		Deliveries:  make([]orderDoc, 0, len(b.Deliveries)),
		Payouts:     make([]payoutDoc, 0, len(b.Payouts)),
	}
	for _, o := range b.Deliveries {
		doc.Deliveries = append(doc.Deliveries, orderDoc{
			ID: o.ID, OrderID: o.OrderID, ShippingCost: o.ShippingCost,
			DeliveredAt: o.DeliveredAt, DeliveryAddress: o.DeliveryAddress,
		})
	}
	for _, p := range b.Payouts {
		doc.Payouts = append(doc.Payouts, payoutDoc{
			ID: p.ID, Amount: p.Amount, PaidAt: p.PaidAt,
			Method: string(p.Method), Reference: p.Reference, Notes: p.Notes,
		})
	}
	return doc
}

func (d balanceDoc) toDomain() domain.CourierBalance {
	b := domain.CourierBalance{
		CourierID:   d.CourierID,
		TotalEarned: d.TotalEarned,
		TotalPaid:   d.TotalPaid,
		Balance:     d.Balance,
		Status:      domain.BalanceStatus(d.Status),
		Deliveries:  make([]domain.DeliveredOrder, 0, len(d.Deliveries)),
		Payouts:     make([]domain.Payout, 0, len(d.Payouts)),
	}
	for _, o := range d.Deliveries {
		b.Deliveries = append(b.Deliveries, domain.DeliveredOrder{
			ID: o.ID, CourierID: d.CourierID, OrderID: o.OrderID, ShippingCost: o.ShippingCost,
			DeliveredAt: o.DeliveredAt, DeliveryAddress: o.DeliveryAddress,
		})
	}
	for _, p := range d.Payouts {
		b.Payouts = append(b.Payouts, domain.Payout{
			ID: p.ID, CourierID: d.CourierID, Amount: p.Amount, PaidAt: p.PaidAt,
			Method: domain.PayoutMethod(p.Method), Reference: p.Reference, Notes: p.Notes,
		})
	}
	return b
}

// Get returns the cached balance and whether it was present.
func (c *BalanceCache) Get(ctx context.Context, courierID int64) (domain.CourierBalance, bool, error) {
	raw, err := c.store.Get(ctx, balanceKey(courierID))
	if errors.Is(err, ErrMiss) {
		return domain.CourierBalance{}, false, nil
	}
	if err != nil {
		return domain.CourierBalance{}, false, err
	}
	var doc balanceDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.CourierBalance{}, false, fmt.Errorf("decode cached balance of courier %d: %w", courierID, err)
	}
	return doc.toDomain(), true, nil
}

// Generation returns the invalidation counter of a courier. Read it before computing a
// balance and pass it to SetIfGeneration.
func (c *BalanceCache) Generation(ctx context.Context, courierID int64) (int64, error) {
	return c.store.GetInt(ctx, generationKey(courierID))
}

// SetIfGeneration stores b for ttl unless the courier was invalidated after gen was read.
// It reports whether b was stored.
func (c *BalanceCache) SetIfGeneration(ctx context.Context, b domain.CourierBalance, gen int64, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(toDoc(b))
	if err != nil {
		return false, fmt.Errorf("encode balance of courier %d: %w", b.CourierID, err)
	}
	return c.store.SetIfEqual(ctx, generationKey(b.CourierID), gen, balanceKey(b.CourierID), raw, ttl)
}

// Invalidate bumps the courier generation, so balances computed before it are never stored,
// and drops the cached entry.
func (c *BalanceCache) Invalidate(ctx context.Context, courierID int64) error {
	_, incrErr := c.store.Incr(ctx, generationKey(courierID))
	if err := c.store.Delete(ctx, balanceKey(courierID)); err != nil {
		return errors.Join(incrErr, err)
	}
	return incrErr
}
