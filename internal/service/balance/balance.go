package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"courier-payouts/internal/domain"
)

// Fetch sources reported by FetchError.
const (
	SourceEarnings = "earnings"
	SourcePayouts  = "payouts"
)

// FetchError says which half of a reconciliation could not be loaded.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("reconcile: fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Classify maps a balance to pending, overpaid or settled by its sign.
func Classify(balance decimal.Decimal) domain.BalanceStatus {
	return domain.ClassifyBalance(balance)
}

// Service reconciles earnings against payouts.
type Service struct {
	earnings earningsSource
	payouts  payoutSource
}

// NewService creates a balance Service.
func NewService(earnings earningsSource, payouts payoutSource) *Service {
	return &Service{earnings: earnings, payouts: payouts}
}

// Reconcile loads earnings and payouts concurrently and derives the balance.
// If either load fails nothing is derived: the first failure is returned as *FetchError.
func (s *Service) Reconcile(ctx context.Context, courierID int64) (domain.CourierBalance, error) {
	var (
		earned domain.Earnings
		paid   domain.PayoutHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.earnings.GetEarnings(gctx, courierID)
		if err != nil {
			return &FetchError{Source: SourceEarnings, Err: err}
		}
		earned = e
		return nil
	})
	g.Go(func() error {
		p, err := s.payouts.ListPayouts(gctx, courierID)
		if err != nil {
			return &FetchError{Source: SourcePayouts, Err: err}
		}
		paid = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.CourierBalance{}, err
	}

	return domain.NewCourierBalance(earned, paid), nil
}
