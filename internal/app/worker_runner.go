package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"courier-payouts/internal/cache"
	"courier-payouts/internal/logx"
	"courier-payouts/internal/transport/kafka"
)

// WorkerRunner runs the delivered-order consumer.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes until the container context is cancelled; any other failure panics.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Server   *http.Server        `optional:"true"`
	Redis    *cache.RedisAdapter `optional:"true"`
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return fmt.Errorf("kafka consumer is nil: KAFKA_BROKERS, KAFKA_GROUP_ID and KAFKA_DELIVERIES_TOPIC are required")
	}
	defer closeWorker(in.Pool, in.Redis, in.Logger, in.Consumer)

	if in.Server != nil {
		errCh := make(chan error, 1)
		startServer(in.Server, in.Logger, "worker", errCh)
		defer gracefulShutdown(in.Server, in.Logger, 5*time.Second)
		go func() {
			if err := <-errCh; err != nil {
				in.Logger.Error("worker http server stopped", logx.Err(err))
			}
		}()
	}

	in.Logger.Info("courier-payouts worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(pool *pgxpool.Pool, redis *cache.RedisAdapter, logger logx.Logger, consumer *kafka.Consumer) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	closeResources(pool, redis, logger)
}
