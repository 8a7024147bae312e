//go:generate mockgen -source=contracts.go -destination=earnings_mocks_test.go -package=earnings_test

package earnings

import (
	"context"

	"courier-payouts/internal/domain"
)

type courierLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type deliveredOrderReader interface {
	ListByCourier(ctx context.Context, courierID int64) ([]domain.DeliveredOrder, error)
}
