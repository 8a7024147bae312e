package balance

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"courier-payouts/internal/domain"
)

type earningsSource interface {
	GetEarnings(ctx context.Context, courierID int64) (domain.Earnings, error)
}

type payoutSource interface {
	ListPayouts(ctx context.Context, courierID int64) (domain.PayoutHistory, error)
}

type courierLister interface {
	List(ctx context.Context, limit, offset *int) ([]domain.Courier, error)
}

// Reconciler computes one courier's balance.
type Reconciler interface {
	Reconcile(ctx context.Context, courierID int64) (domain.CourierBalance, error)
}

// Cache stores computed balances by courier id. Every Invalidate bumps the courier
// generation; SetIfGeneration refuses balances computed under an older one.
type Cache interface {
	Get(ctx context.Context, courierID int64) (domain.CourierBalance, bool, error)
	Generation(ctx context.Context, courierID int64) (int64, error)
	SetIfGeneration(ctx context.Context, b domain.CourierBalance, gen int64, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, courierID int64) error
}

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}
