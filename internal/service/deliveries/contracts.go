//go:generate mockgen -source=contracts.go -destination=deliveries_mocks_test.go -package=deliveries_test

package deliveries

import (
	"context"

	"courier-payouts/internal/domain"
)

// OrderStore appends delivered orders idempotently by order id.
type OrderStore interface {
	Insert(ctx context.Context, d *domain.DeliveredOrder) (bool, error)
}

// Invalidator drops derived state that depends on a courier's earnings.
type Invalidator interface {
	Invalidate(ctx context.Context, courierID int64) error
}
