package ratelimit

import (
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"courier-payouts/internal/logx"
)

// KeyFunc derives the limiter key for a request.
type KeyFunc func(r *http.Request) string

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Middleware rejects requests over the limit with 429.
type Middleware struct {
	logger   logx.Logger
	rejected counterVec
	limiter  Limiter
	scope    string
	key      KeyFunc
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithScope names the limiter in logs and in the rejection metric.
func WithScope(scope string) Option {
	return func(m *Middleware) { m.scope = scope }
}

// WithKeyFunc replaces the default client IP key.
func WithKeyFunc(fn KeyFunc) Option {
	return func(m *Middleware) { m.key = fn }
}

// New creates a Middleware; a nil limiter admits everything.
func New(logger logx.Logger, rejected counterVec, limiter Limiter, opts ...Option) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	m := &Middleware{
		logger:   logger,
		rejected: rejected,
		limiter:  limiter,
		scope:    "api",
		key:      ClientIP,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := m.key(r)

			ok, wait := m.limiter.Allow(key)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			if m.rejected != nil {
				m.rejected.WithLabelValues(m.scope).Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("scope", m.scope),
				logx.String("key", key),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
				// клиент мог оборвать соединение
				m.logger.Debug("rate limit response write failed", logx.Err(err))
			}
		})
	}
}

func retryAfterSeconds(d time.Duration) string {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		s = 1
	}
	return strconv.Itoa(s)
}

// ClientIP keys by the remote host. RealIP middleware upstream has already applied proxy headers.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// ClientCourierKey keys by client IP and the {id} route parameter, so payout writes for
// one courier are throttled independently of writes for another.
func ClientCourierKey(r *http.Request) string {
	return ClientIP(r) + "|courier:" + chi.URLParam(r, "id")
}
