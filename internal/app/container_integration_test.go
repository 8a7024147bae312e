//go:build integration

package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"courier-payouts/internal/app"
	"courier-payouts/internal/config"
)

func TestMustBuildContainer_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("payouts_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8080,
		DB:                 config.DB{Host: host, Port: port.Port(), User: "test_user", Pass: "test_pass", Name: "payouts_db"},
		OperationTimeout:   3 * time.Second,
		PayoutWriteTimeout: 5 * time.Second,
		StoreRetry:         config.DefaultStoreRetry(),
		RateLimit:          config.DefaultRateLimit(),
		Balance:            config.Balance{SummaryConcurrency: 4},
		Log:                config.Log{Level: "error"},
	}

	c := app.NewContainerBuilder().WithConfig(cfg).MustBuild(ctx)
	require.NotNil(t, c)

	err = c.Invoke(func(pool *pgxpool.Pool, mux http.Handler) {
		require.NotNil(t, pool)
		defer pool.Close()

		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/courier",
			strings.NewReader(`{"full_name":"Ivan","transport_type":"on_foot"}`)))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/couriers/1/payouts",
			strings.NewReader(`{"amount":"0.00","method":"cash"}`)))
		require.Equal(t, http.StatusBadRequest, rr.Code)

		rr = httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/couriers/1/balance", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), `"status":"settled"`)
	})
	require.NoError(t, err)
}
