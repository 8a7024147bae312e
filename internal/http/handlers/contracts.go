package handlers

import (
	"context"

	"courier-payouts/internal/domain"
)

type courierUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Courier, error)
	Create(ctx context.Context, c *domain.Courier) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error)
}

type earningsUsecase interface {
	GetEarnings(ctx context.Context, courierID int64) (domain.Earnings, error)
}

type ledgerUsecase interface {
	ListPayouts(ctx context.Context, courierID int64) (domain.PayoutHistory, error)
	RecordPayout(ctx context.Context, in domain.NewPayout) (domain.Payout, error)
}

type balanceUsecase interface {
	Reconcile(ctx context.Context, courierID int64) (domain.CourierBalance, error)
}

type summaryUsecase interface {
	Summary(ctx context.Context) ([]domain.CourierBalance, error)
}
