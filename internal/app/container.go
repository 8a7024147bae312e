package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"courier-payouts/internal/cache"
	"courier-payouts/internal/config"
	"courier-payouts/internal/http/handlers"
	"courier-payouts/internal/http/middleware"
	"courier-payouts/internal/http/pprofserver"
	"courier-payouts/internal/http/router"
	"courier-payouts/internal/logx"
	"courier-payouts/internal/metrics"
	"courier-payouts/internal/repository"
	"courier-payouts/internal/service/balance"
	"courier-payouts/internal/service/courier"
	"courier-payouts/internal/service/earnings"
	"courier-payouts/internal/service/ledger"
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config loading with a fixed config.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the delivered-order worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	steps := []struct {
		name string
		fn   func(*dig.Container) error
	}{
		{"core", func(c *dig.Container) error { return registerCore(c, ctx, b.loadConfig) }},
		{"DB", func(c *dig.Container) error { return registerDb(c, b.dbConnect) }},
		{"repository", registerRepositories},
		{"cache", registerCache},
		{"service", registerDomainServices},
		{"http", registerHTTP},
	}
	for _, s := range steps {
		if err := s.fn(container); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return container, nil
}

// MustBuildContainer builds and returns the API container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, load func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		load,
		NewLogger,
		prometheus.NewRegistry,
		provideMetrics,
	)
}

// provideMetrics registers runtime collectors and the service metrics in reg.
func provideMetrics(reg *prometheus.Registry) (*metrics.Set, error) {
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	return metrics.NewSet(reg)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, logger logx.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
		return openStore(ctx, logger, dbConnect, cfg.DB.DSN())
	}
	return provideAll(container, providerDB)
}

func registerRepositories(container *dig.Container) error {
	return provideAll(container,
		repository.NewCourierRepo,
		repository.NewDeliveredOrderRepo,
		repository.NewPayoutRepo,
		func(logger logx.Logger, m *metrics.Set, cfg *config.Config) *repository.Retrier {
			return repository.NewRetrier(logger, m.StoreReadRetries, repository.RetryConfig{
				MaxAttempts: cfg.StoreRetry.MaxAttempts,
				BaseDelay:   cfg.StoreRetry.BaseDelay,
				MaxDelay:    cfg.StoreRetry.MaxDelay,
			})
		},
		func(repo *repository.CourierRepo, r *repository.Retrier) *repository.RetryingCouriers {
			return repository.NewRetryingCouriers(repo, r)
		},
		func(repo *repository.DeliveredOrderRepo, r *repository.Retrier) *repository.RetryingDeliveredOrders {
			return repository.NewRetryingDeliveredOrders(repo, r)
		},
		func(repo *repository.PayoutRepo, r *repository.Retrier) *repository.RetryingPayouts {
			return repository.NewRetryingPayouts(repo, r)
		},
	)
}

// balanceCacheOut is empty when REDIS_URL is not set.
type balanceCacheOut struct {
	dig.Out

	Redis       *cache.RedisAdapter
	Cache       balance.Cache
	Invalidator invalidator
}

// invalidator drops cached balances after ledger or earnings writes.
type invalidator interface {
	Invalidate(ctx context.Context, courierID int64) error
}

func newBalanceCache(ctx context.Context, logger logx.Logger, cfg *config.Config) (balanceCacheOut, error) {
	if cfg.Cache.RedisURL == "" {
		logger.Info("balance cache disabled")
		return balanceCacheOut{}, nil
	}
	rds, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
	if err != nil {
		return balanceCacheOut{}, fmt.Errorf("redis: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rds.Ping(pingCtx); err != nil {
		// кеш необязателен: балансы считаются напрямую, пока redis не поднимется
		logger.Warn("redis unavailable at startup", logx.Err(err))
	}
	bc := cache.NewBalanceCache(rds)
	return balanceCacheOut{Redis: rds, Cache: bc, Invalidator: bc}, nil
}

func registerCache(container *dig.Container) error {
	return provideAll(container, newBalanceCache)
}

type ledgerIn struct {
	dig.In

	Couriers    *repository.RetryingCouriers
	Payouts     *repository.RetryingPayouts
	Tx          *repository.PayoutRepo
	Invalidator invalidator
	Logger      logx.Logger
	Metrics     *metrics.Set
	Config      *config.Config
}

func newLedger(in ledgerIn) *ledger.Service {
	opts := []ledger.Option{ledger.WithMetrics(in.Metrics.PayoutsRecorded, in.Metrics.PayoutWriteFailure)}
	if in.Invalidator != nil {
		opts = append(opts, ledger.WithInvalidator(in.Invalidator))
	}
	return ledger.NewService(in.Couriers, in.Payouts, in.Tx, in.Logger,
		in.Config.OperationTimeout, in.Config.PayoutWriteTimeout, opts...)
}

type reconcilerIn struct {
	dig.In

	Service *balance.Service
	Cache   balance.Cache
	Logger  logx.Logger
	Metrics *metrics.Set
	Config  *config.Config
}

func newReconciler(in reconcilerIn) balance.Reconciler {
	if in.Cache == nil {
		return in.Service
	}
	return balance.NewCachedReconciler(in.Service, in.Cache, in.Config.Cache.TTL, in.Logger, in.Metrics.BalanceCache)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(repo *repository.CourierRepo, cfg *config.Config) *courier.Service {
			return courier.NewService(repo, cfg.OperationTimeout)
		},
		func(couriers *repository.RetryingCouriers, orders *repository.RetryingDeliveredOrders, cfg *config.Config) *earnings.Service {
			return earnings.NewService(couriers, orders, cfg.OperationTimeout)
		},
		newLedger,
		func(e *earnings.Service, l *ledger.Service) *balance.Service {
			return balance.NewService(e, l)
		},
		newReconciler,
		func(couriers *repository.RetryingCouriers, r balance.Reconciler, cfg *config.Config) *balance.Summarizer {
			return balance.NewSummarizer(couriers, r, cfg.Balance.SummaryConcurrency)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, svc *courier.Service) *handlers.CourierHandler {
			return handlers.NewCourierHandler(logger, svc)
		},
		func(logger logx.Logger, svc *earnings.Service) *handlers.EarningsHandler {
			return handlers.NewEarningsHandler(logger, svc)
		},
		func(logger logx.Logger, svc *ledger.Service) *handlers.PayoutHandler {
			return handlers.NewPayoutHandler(logger, svc)
		},
		func(logger logx.Logger, r balance.Reconciler, s *balance.Summarizer) *handlers.BalanceHandler {
			return handlers.NewBalanceHandler(logger, r, s)
		},
		newRateLimiters,
		newRateLimitMiddlewares,
		newRouter,
		serverProvider,
		newPprofServer,
	)
}

type routerIn struct {
	dig.In

	Base     *handlers.Handlers
	Couriers *handlers.CourierHandler
	Earnings *handlers.EarningsHandler
	Payouts  *handlers.PayoutHandler
	Balances *handlers.BalanceHandler
	Limits   rateLimitMiddlewares
	Logger   logx.Logger
	Metrics  *metrics.Set
	Registry *prometheus.Registry
	Config   *config.Config
}

func newRouter(in routerIn) http.Handler {
	return router.New(
		router.Handlers{
			Base:     in.Base,
			Couriers: in.Couriers,
			Earnings: in.Earnings,
			Payouts:  in.Payouts,
			Balances: in.Balances,
		},
		router.WithObservability(middleware.Observability(in.Logger, in.Metrics.HTTPRequests, in.Metrics.HTTPDuration)),
		router.WithRateLimit(in.Limits.API),
		router.WithWriteLimit(in.Limits.Write),
		router.WithMetricsHandler(promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{Registry: in.Registry})),
		router.WithTimeout(in.Config.PayoutWriteTimeout+time.Second),
	)
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config, logger logx.Logger) pprofOut {
	return pprofOut{Server: pprofserver.New(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	}, logger)}
}
