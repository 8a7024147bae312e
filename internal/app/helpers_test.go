package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"courier-payouts/internal/logx"
	testlog "courier-payouts/internal/testutil"
)

func withStubNewPool(t *testing.T, stub func(context.Context, string) (*pgxpool.Pool, error)) {
	t.Helper()
	orig := newPool
	newPool = stub
	t.Cleanup(func() { newPool = orig })
}

func TestConnectDbWithRetry_SuccessFirstAttempt(t *testing.T) {
	wantPool := &pgxpool.Pool{}
	calls := 0

	withStubNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		return wantPool, nil
	})

	pool, err := connectDbWithRetry(context.Background(), logx.Nop(), "postgres://stub", 3, 10*time.Millisecond)
	require.NoError(t, err)
	require.Same(t, wantPool, pool)
	require.Equal(t, 1, calls)
}

func TestConnectDbWithRetry_SucceedsAfterFailures(t *testing.T) {
	rec := testlog.New()
	calls := 0

	withStubNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return &pgxpool.Pool{}, nil
	})

	pool, err := connectDbWithRetry(context.Background(), rec.Logger(), "postgres://stub", 5, 0)
	require.NoError(t, err)
	require.NotNil(t, pool)
	require.Equal(t, 3, calls)

	e, ok := rec.Find("db connected")
	require.True(t, ok)
	attempt, _ := e.Field("attempt")
	require.Equal(t, 3, attempt)
}

func TestConnectDbWithRetry_ExhaustsRetries(t *testing.T) {
	sentinelErr := errors.New("db boom")
	calls := 0

	withStubNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		return nil, sentinelErr
	})

	pool, err := connectDbWithRetry(context.Background(), logx.Nop(), "postgres://stub", 3, 0)
	require.Error(t, err)
	require.Nil(t, pool)
	require.Equal(t, 3, calls)
	require.ErrorIs(t, err, sentinelErr)
}

func TestConnectDbWithRetry_ContextCanceledBetweenRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	withStubNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, errors.New("db boom")
	})

	pool, err := connectDbWithRetry(ctx, logx.Nop(), "postgres://stub", 3, 50*time.Millisecond)
	require.Error(t, err)
	require.Nil(t, pool)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpenStore_ConnectErrorSkipsMigrate(t *testing.T) {
	stubMigrate(t, func(context.Context, *pgxpool.Pool) error {
		require.Fail(t, "migrate must not run without a pool")
		return nil
	})

	connect := func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
		return nil, errors.New("no db")
	}
	pool, err := openStore(context.Background(), logx.Nop(), connect, "postgres://stub")
	require.Nil(t, pool)
	require.ErrorContains(t, err, "no db")
}

func TestOpenStore_MigratesConnectedPool(t *testing.T) {
	want := &pgxpool.Pool{}
	var migrated *pgxpool.Pool
	stubMigrate(t, func(_ context.Context, p *pgxpool.Pool) error {
		migrated = p
		return nil
	})

	pool, err := openStore(context.Background(), logx.Nop(), stubConnect(want), "postgres://stub")
	require.NoError(t, err)
	require.Same(t, want, pool)
	require.Same(t, want, migrated)
}
