package repository

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"courier-payouts/internal/domain"
	"courier-payouts/internal/logx"
)

type retryCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// RetryConfig describes how reads are repeated after transient store failures.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Retrier repeats read queries with exponential backoff. Writes never go through it.
type Retrier struct {
	logger  logx.Logger
	retries retryCounter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetrier creates a Retrier. A nil counter disables the metric.
func NewRetrier(logger logx.Logger, retries retryCounter, cfg RetryConfig) *Retrier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Retrier{logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

func retryRead[T any](ctx context.Context, r *Retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		// проверяем условия повтора
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !IsTransient(err) {
			break
		}
		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.WithLabelValues(op).Inc()
		}
		r.logger.Warn("store read retry",
			logx.String("op", op),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !r.sleep(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d <= 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type courierReader interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Courier, error)
}

// RetryingCouriers retries courier reads.
type RetryingCouriers struct {
	next courierReader
	r    *Retrier
}

// NewRetryingCouriers wraps next with read retries.
func NewRetryingCouriers(next courierReader, r *Retrier) *RetryingCouriers {
	return &RetryingCouriers{next: next, r: r}
}

// Get implements courier lookup with retries.
func (c *RetryingCouriers) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	return retryRead(ctx, c.r, "courier_get", func(ctx context.Context) (*domain.Courier, error) {
		return c.next.Get(ctx, id)
	})
}

// Exists implements courier existence check with retries.
func (c *RetryingCouriers) Exists(ctx context.Context, id int64) (bool, error) {
	return retryRead(ctx, c.r, "courier_exists", func(ctx context.Context) (bool, error) {
		return c.next.Exists(ctx, id)
	})
}

// List implements courier listing with retries.
func (c *RetryingCouriers) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	return retryRead(ctx, c.r, "courier_list", func(ctx context.Context) ([]domain.Courier, error) {
		return c.next.List(ctx, limit, offset)
	})
}

type deliveredOrderReader interface {
	ListByCourier(ctx context.Context, courierID int64) ([]domain.DeliveredOrder, error)
}

// RetryingDeliveredOrders retries delivered-order reads.
type RetryingDeliveredOrders struct {
	next deliveredOrderReader
	r    *Retrier
}

// NewRetryingDeliveredOrders wraps next with read retries.
func NewRetryingDeliveredOrders(next deliveredOrderReader, r *Retrier) *RetryingDeliveredOrders {
	return &RetryingDeliveredOrders{next: next, r: r}
}

// ListByCourier implements delivered-order listing with retries.
func (d *RetryingDeliveredOrders) ListByCourier(ctx context.Context, courierID int64) ([]domain.DeliveredOrder, error) {
	return retryRead(ctx, d.r, "delivered_orders_list", func(ctx context.Context) ([]domain.DeliveredOrder, error) {
		return d.next.ListByCourier(ctx, courierID)
	})
}

type payoutReader interface {
	ListByCourier(ctx context.Context, courierID int64) ([]domain.Payout, error)
}

// RetryingPayouts retries payout reads only; the ledger insert must reach the store once.
type RetryingPayouts struct {
	next payoutReader
	r    *Retrier
}

// NewRetryingPayouts wraps next with read retries.
func NewRetryingPayouts(next payoutReader, r *Retrier) *RetryingPayouts {
	return &RetryingPayouts{next: next, r: r}
}

// ListByCourier implements payout listing with retries.
func (p *RetryingPayouts) ListByCourier(ctx context.Context, courierID int64) ([]domain.Payout, error) {
	return retryRead(ctx, p.r, "payouts_list", func(ctx context.Context) ([]domain.Payout, error) {
		return p.next.ListByCourier(ctx, courierID)
	})
}
