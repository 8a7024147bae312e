package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"courier-payouts/internal/http/handlers"
)

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Base     *handlers.Handlers
	Couriers *handlers.CourierHandler
	Earnings *handlers.EarningsHandler
	Payouts  *handlers.PayoutHandler
	Balances *handlers.BalanceHandler
}

type options struct {
	observe    func(http.Handler) http.Handler
	apiLimit   func(http.Handler) http.Handler
	writeLimit func(http.Handler) http.Handler
	metrics    http.Handler
	timeout    time.Duration
}

// Option configures the router.
type Option func(*options)

// WithObservability installs request metrics and logging for every route.
func WithObservability(mw func(http.Handler) http.Handler) Option {
	return func(o *options) { o.observe = mw }
}

// WithRateLimit limits every API route; /ping, /healthcheck and /metrics stay open.
func WithRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(o *options) { o.apiLimit = mw }
}

// WithWriteLimit adds a stricter limiter in front of payout writes.
func WithWriteLimit(mw func(http.Handler) http.Handler) Option {
	return func(o *options) { o.writeLimit = mw }
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) { o.metrics = h }
}

// WithTimeout overrides the per-request timeout (5s by default).
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func passthrough(next http.Handler) http.Handler { return next }

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h Handlers, opts ...Option) http.Handler {
	o := options{
		observe:    passthrough,
		apiLimit:   passthrough,
		writeLimit: passthrough,
		timeout:    5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(o.observe)

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}
	r.NotFound(http.HandlerFunc(h.Base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(h.Base.MethodNotAllowed))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(o.timeout))
		r.Use(o.apiLimit)

		r.Get("/couriers", h.Couriers.List)
		r.Get("/courier/{id}", h.Couriers.GetByID)
		r.Post("/courier", h.Couriers.Create)
		r.Put("/courier", h.Couriers.Update)

		r.Route("/couriers/{id}", func(r chi.Router) {
			r.Get("/earnings", h.Earnings.Get)
			r.Get("/payouts", h.Payouts.List)
			r.With(o.writeLimit).Post("/payouts", h.Payouts.Record)
			r.Get("/balance", h.Balances.Get)
		})

		r.Get("/balances", h.Balances.Summary)
	})

	return r
}
