//go:generate mockgen -source=contracts.go -destination=ledger_mocks_test.go -package=ledger_test

package ledger

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"courier-payouts/internal/domain"
)

type courierLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type payoutReader interface {
	ListByCourier(ctx context.Context, courierID int64) ([]domain.Payout, error)
}

// Invalidator drops derived state that depends on a courier's payouts.
type Invalidator interface {
	Invalidate(ctx context.Context, courierID int64) error
}

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

type counter interface {
	Inc()
}
