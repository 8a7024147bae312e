package ledger_test

import (
	"context"
	"sort"
	"sync"

	"courier-payouts/internal/domain"
	"courier-payouts/internal/ports/payouttx"
)

// memLedger is an in-memory payout store with transactional semantics good enough for the service.
type memLedger struct {
	mu       sync.Mutex
	couriers map[int64]bool
	rows     []domain.Payout

	lockErr   error
	insertErr error
	txCtx     context.Context
}

func newMemLedger(couriers ...int64) *memLedger {
	m := &memLedger{couriers: make(map[int64]bool)}
	for _, id := range couriers {
		m.couriers[id] = true
	}
	return m
}

func (m *memLedger) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.couriers[id], nil
}

func (m *memLedger) ListByCourier(_ context.Context, courierID int64) ([]domain.Payout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Payout, 0)
	for _, p := range m.rows {
		if p.CourierID == courierID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (m *memLedger) WithTx(ctx context.Context, fn func(tx payouttx.Repository) error) error {
	m.mu.Lock()
	m.txCtx = ctx
	m.mu.Unlock()

	tx := &memTx{m: m}
	if err := fn(tx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, tx.pending...)
	return nil
}

type memTx struct {
	m       *memLedger
	pending []domain.Payout
}

func (t *memTx) LockCourier(ctx context.Context, courierID int64) (bool, error) {
	if t.m.lockErr != nil {
		return false, t.m.lockErr
	}
	return t.m.Exists(ctx, courierID)
}

func (t *memTx) InsertPayout(_ context.Context, p *domain.Payout) error {
	if t.m.insertErr != nil {
		return t.m.insertErr
	}
	t.pending = append(t.pending, *p)
	return nil
}
