package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"courier-payouts/internal/http/handlers"

	"courier-payouts/internal/config"
	"courier-payouts/internal/logx"
	"courier-payouts/internal/metrics"
	"courier-payouts/internal/repository"
	"courier-payouts/internal/service/deliveries"
	"courier-payouts/internal/transport/kafka"
)

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	steps := []struct {
		name string
		fn   func(*dig.Container) error
	}{
		{"core", func(c *dig.Container) error { return registerCore(c, ctx, b.loadConfig) }},
		{"DB", func(c *dig.Container) error { return registerDb(c, b.dbConnect) }},
		{"cache", registerCache},
		{"worker", registerWorker},
	}
	for _, s := range steps {
		if err := s.fn(container); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return container, nil
}

type processorIn struct {
	dig.In

	Store       *repository.DeliveredOrderRepo
	Invalidator invalidator
	Metrics     *metrics.Set
	Logger      logx.Logger
	Config      *config.Config
}

func newProcessor(in processorIn) *deliveries.Processor {
	var inv deliveries.Invalidator
	if in.Invalidator != nil {
		inv = in.Invalidator
	}
	return deliveries.NewProcessor(in.Store, inv, in.Metrics.DeliveriesIngested, in.Logger, in.Config.OperationTimeout)
}

func newDeliveriesConsumer(logger logx.Logger, cfg *config.Config, p *deliveries.Processor) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeDeliveriesKafka(p))
}

// newWorkerServer exposes liveness and metrics of the worker; it serves no API.
func newWorkerServer(cfg *config.Config, logger logx.Logger, reg *prometheus.Registry) *http.Server {
	base := handlers.New(logger)
	r := chi.NewRouter()
	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.NotFound(base.NotFound)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveredOrderRepo,
		newProcessor,
		newDeliveriesConsumer,
		newWorkerServer,
	)
}
