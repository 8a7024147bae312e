package earnings

import (
	"context"
	"fmt"
	"time"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"
)

// Service aggregates what couriers earned from their delivered orders.
type Service struct {
	couriers         courierLookup
	orders           deliveredOrderReader
	operationTimeout time.Duration
}

// NewService creates an earnings Service.
func NewService(couriers courierLookup, orders deliveredOrderReader, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{couriers: couriers, orders: orders, operationTimeout: timeout}
}

// GetEarnings returns the courier's delivered orders, newest first, and their shipping total.
// A courier without deliveries has zero earnings; an unknown courier is apperr.NotFound.
func (s *Service) GetEarnings(ctx context.Context, courierID int64) (domain.Earnings, error) {
	if courierID <= 0 {
		return domain.Earnings{}, apperr.Field("courier_id", apperr.Invalid)
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	ok, err := s.couriers.Exists(ctx, courierID)
	if err != nil {
		return domain.Earnings{}, err
	}
	if !ok {
		return domain.Earnings{}, fmt.Errorf("courier %d: %w", courierID, apperr.NotFound)
	}

	orders, err := s.orders.ListByCourier(ctx, courierID)
	if err != nil {
		return domain.Earnings{}, err
	}
	if orders == nil {
		orders = []domain.DeliveredOrder{}
	}

	return domain.Earnings{
		CourierID:   courierID,
		Records:     orders,
		TotalEarned: domain.SumShipping(orders),
	}, nil
}
