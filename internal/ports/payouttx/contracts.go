package payouttx

import (
	"context"

	"courier-payouts/internal/domain"
)

// Repository is the set of statements allowed inside a payout transaction.
type Repository interface {
	// LockCourier takes a share lock on the courier row and reports whether it exists.
	LockCourier(ctx context.Context, courierID int64) (bool, error)
	InsertPayout(ctx context.Context, p *domain.Payout) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
