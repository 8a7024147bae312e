package balance

import (
	"context"
	"time"

	"courier-payouts/internal/domain"
	"courier-payouts/internal/logx"
)

// CachedReconciler memoizes balances for a short TTL. Cache errors fall through to computing
// the balance, so a broken cache only costs latency.
type CachedReconciler struct {
	next     Reconciler
	cache    Cache
	ttl      time.Duration
	logger   logx.Logger
	requests counterVec
}

// NewCachedReconciler wraps next with cache. A nil counter disables the hit/miss metric.
func NewCachedReconciler(next Reconciler, cache Cache, ttl time.Duration, logger logx.Logger, requests counterVec) *CachedReconciler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CachedReconciler{next: next, cache: cache, ttl: ttl, logger: logger, requests: requests}
}

func (c *CachedReconciler) count(result string) {
	if c.requests != nil {
		c.requests.WithLabelValues(result).Inc()
	}
}

// Reconcile returns the cached balance or computes and stores it.
func (c *CachedReconciler) Reconcile(ctx context.Context, courierID int64) (domain.CourierBalance, error) {
	b, ok, err := c.cache.Get(ctx, courierID)
	switch {
	case err != nil:
		c.count("error")
		c.logger.Warn("balance cache read failed", logx.CourierID(courierID), logx.Err(err))
	case ok:
		c.count("hit")
		return b, nil
	default:
		c.count("miss")
	}

	// поколение читаем до расчёта: инвалидация во время расчёта не даст записать старый баланс
	gen, genErr := c.cache.Generation(ctx, courierID)
	if genErr != nil {
		c.logger.Warn("balance cache generation read failed", logx.CourierID(courierID), logx.Err(genErr))
	}

	b, err = c.next.Reconcile(ctx, courierID)
	if err != nil {
		return domain.CourierBalance{}, err
	}
	if genErr != nil {
		return b, nil
	}

	stored, err := c.cache.SetIfGeneration(ctx, b, gen, c.ttl)
	switch {
	case err != nil:
		c.logger.Warn("balance cache write failed", logx.CourierID(courierID), logx.Err(err))
	case !stored:
		c.count("stale")
		c.logger.Debug("balance invalidated while computing, not cached", logx.CourierID(courierID))
	}
	return b, nil
}

// Invalidate drops the cached balance of a courier and rejects balances still being computed.
func (c *CachedReconciler) Invalidate(ctx context.Context, courierID int64) error {
	return c.cache.Invalidate(ctx, courierID)
}
