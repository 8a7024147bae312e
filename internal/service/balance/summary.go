package balance

import (
	"context"

	"golang.org/x/sync/errgroup"

	"courier-payouts/internal/domain"
)

// Summarizer reconciles every registered courier.
type Summarizer struct {
	couriers    courierLister
	reconciler  Reconciler
	concurrency int
}

// NewSummarizer creates a Summarizer running at most concurrency reconciliations at once.
func NewSummarizer(couriers courierLister, reconciler Reconciler, concurrency int) *Summarizer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Summarizer{couriers: couriers, reconciler: reconciler, concurrency: concurrency}
}

// Summary returns one balance per courier, ordered by courier id. Any failure fails the whole call.
func (s *Summarizer) Summary(ctx context.Context) ([]domain.CourierBalance, error) {
	couriers, err := s.couriers.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CourierBalance, len(couriers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, c := range couriers {
		g.Go(func() error {
			b, err := s.reconciler.Reconcile(gctx, c.ID)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
