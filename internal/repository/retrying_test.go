package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"
	"courier-payouts/internal/logx"
	testlog "courier-payouts/internal/testutil"
)

type payoutReaderFunc func(ctx context.Context, courierID int64) ([]domain.Payout, error)

func (f payoutReaderFunc) ListByCourier(ctx context.Context, courierID int64) ([]domain.Payout, error) {
	return f(ctx, courierID)
}

func newTestRetrier(t *testing.T, attempts int) (*Retrier, *prometheus.CounterVec, *[]time.Duration) {
	t.Helper()
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_retries_total"}, []string{"op"})
	r := NewRetrier(logx.Nop(), vec, RetryConfig{MaxAttempts: attempts, BaseDelay: 10 * time.Millisecond, MaxDelay: 25 * time.Millisecond})
	var slept []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) bool {
		slept = append(slept, d)
		return true
	}
	return r, vec, &slept
}

func transientErr() error {
	return unavailable("list", &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"})
}

func TestRetryingPayouts_RetriesTransientThenSucceeds(t *testing.T) {
	t.Parallel()

	r, vec, slept := newTestRetrier(t, 3)
	calls := 0
	repo := NewRetryingPayouts(payoutReaderFunc(func(context.Context, int64) ([]domain.Payout, error) {
		calls++
		if calls < 3 {
			return nil, transientErr()
		}
		return []domain.Payout{{CourierID: 7}}, nil
	}), r)

	got, err := repo.ListByCourier(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 3, calls)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *slept)
	require.Equal(t, 2.0, testutil.ToFloat64(vec.WithLabelValues("payouts_list")))
}

func TestRetryingPayouts_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	r, _, slept := newTestRetrier(t, 3)
	calls := 0
	repo := NewRetryingPayouts(payoutReaderFunc(func(context.Context, int64) ([]domain.Payout, error) {
		calls++
		return nil, transientErr()
	}), r)

	_, err := repo.ListByCourier(context.Background(), 7)
	require.ErrorIs(t, err, apperr.DataUnavailable)
	require.Equal(t, 3, calls)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *slept)
}

func TestRetryingPayouts_DoesNotRetryPermanentErrors(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRetrier(t, 5)
	calls := 0
	boom := unavailable("list", &pgconn.PgError{Code: "42P01", Message: "relation does not exist"})
	repo := NewRetryingPayouts(payoutReaderFunc(func(context.Context, int64) ([]domain.Payout, error) {
		calls++
		return nil, boom
	}), r)

	_, err := repo.ListByCourier(context.Background(), 7)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestRetryingPayouts_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRetrier(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	repo := NewRetryingPayouts(payoutReaderFunc(func(context.Context, int64) ([]domain.Payout, error) {
		calls++
		cancel()
		return nil, transientErr()
	}), r)

	_, err := repo.ListByCourier(ctx, 7)
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestRetrier_LogsEachRetry(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := NewRetrier(rec.Logger(), nil, RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	r.sleep = func(context.Context, time.Duration) bool { return true }

	_, err := retryRead(context.Background(), r, "courier_exists", func(context.Context) (bool, error) {
		return false, transientErr()
	})
	require.Error(t, err)

	entry, ok := rec.Find("store read retry")
	require.True(t, ok)
	op, _ := entry.Field("op")
	require.Equal(t, "courier_exists", op)
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 5))
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"connection exception", &pgconn.PgError{Code: "08006"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestUnavailableKeepsCause(t *testing.T) {
	t.Parallel()

	err := unavailable("get courier 1", context.DeadlineExceeded)
	require.ErrorIs(t, err, apperr.DataUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
