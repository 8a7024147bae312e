package balance_test

import (
	"context"
	"sort"
	"sync"

	"courier-payouts/internal/domain"
	"courier-payouts/internal/ports/payouttx"
)

// memStore backs the earnings and ledger services with maps.
type memStore struct {
	mu       sync.Mutex
	couriers map[int64]bool
	orders   []domain.DeliveredOrder
	payouts  []domain.Payout
}

func newMemStore(couriers ...int64) *memStore {
	s := &memStore{couriers: make(map[int64]bool)}
	for _, id := range couriers {
		s.couriers[id] = true
	}
	return s
}

func (s *memStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couriers[id], nil
}

func (s *memStore) List(_ context.Context, _, _ *int) ([]domain.Courier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Courier, 0, len(s.couriers))
	for id := range s.couriers {
		out = append(out, domain.Courier{ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) addOrder(o domain.DeliveredOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = int64(len(s.orders) + 1)
	s.orders = append(s.orders, o)
}

func (s *memStore) payoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payouts)
}

type orderReader struct{ s *memStore }

func (r orderReader) ListByCourier(_ context.Context, courierID int64) ([]domain.DeliveredOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.DeliveredOrder, 0)
	for _, o := range r.s.orders {
		if o.CourierID == courierID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeliveredAt.After(out[j].DeliveredAt) })
	return out, nil
}

type payoutReader struct{ s *memStore }

func (r payoutReader) ListByCourier(_ context.Context, courierID int64) ([]domain.Payout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Payout, 0)
	for _, p := range r.s.payouts {
		if p.CourierID == courierID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (s *memStore) WithTx(ctx context.Context, fn func(tx payouttx.Repository) error) error {
	tx := &memTx{s: s}
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payouts = append(s.payouts, tx.pending...)
	return nil
}

type memTx struct {
	s       *memStore
	pending []domain.Payout
}

func (t *memTx) LockCourier(ctx context.Context, courierID int64) (bool, error) {
	return t.s.Exists(ctx, courierID)
}

func (t *memTx) InsertPayout(_ context.Context, p *domain.Payout) error {
	t.pending = append(t.pending, *p)
	return nil
}
