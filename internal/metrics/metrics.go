package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewHTTPRequestsTotal returns a counter of served HTTP requests by method, route pattern and status.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request latency with the same labels as NewHTTPRequestsTotal.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}

// NewRateLimitExceededTotal returns a counter of requests rejected by rate limiting, labelled by
// limiter scope (api, ledger_write).
func NewRateLimitExceededTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	}, []string{"scope"})
}

// NewStoreReadRetriesTotal returns a counter of retried read queries, labelled by operation.
func NewStoreReadRetriesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_read_retries_total",
		Help: "Total number of read query retries performed against the store",
	}, []string{"op"})
}

// NewPayoutsRecordedTotal returns a counter of payouts written to the ledger, labelled by method.
func NewPayoutsRecordedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payouts_recorded_total",
		Help: "Total number of payouts appended to the ledger",
	}, []string{"method"})
}

// NewPayoutWriteFailuresTotal returns a counter of payout inserts that did not commit.
func NewPayoutWriteFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payout_write_failures_total",
		Help: "Total number of payout writes that failed and were handed back to the caller",
	})
}

// NewBalanceCacheRequestsTotal returns a counter of balance cache lookups by result (hit, miss, error).
func NewBalanceCacheRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "balance_cache_requests_total",
		Help: "Total number of balance cache lookups by result",
	}, []string{"result"})
}

// NewDeliveriesIngestedTotal returns a counter of consumed fulfillment events by outcome.
func NewDeliveriesIngestedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deliveries_ingested_total",
		Help: "Total number of fulfillment events processed by outcome",
	}, []string{"outcome"})
}

// Set groups the service collectors so they can be registered together.
type Set struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	RateLimitExceeded  *prometheus.CounterVec
	StoreReadRetries   *prometheus.CounterVec
	PayoutsRecorded    *prometheus.CounterVec
	PayoutWriteFailure prometheus.Counter
	BalanceCache       *prometheus.CounterVec
	DeliveriesIngested *prometheus.CounterVec
}

// NewSet creates every collector and registers them in reg.
func NewSet(reg prometheus.Registerer) (*Set, error) {
	s := &Set{
		HTTPRequests:       NewHTTPRequestsTotal(),
		HTTPDuration:       NewHTTPRequestDuration(),
		RateLimitExceeded:  NewRateLimitExceededTotal(),
		StoreReadRetries:   NewStoreReadRetriesTotal(),
		PayoutsRecorded:    NewPayoutsRecordedTotal(),
		PayoutWriteFailure: NewPayoutWriteFailuresTotal(),
		BalanceCache:       NewBalanceCacheRequestsTotal(),
		DeliveriesIngested: NewDeliveriesIngestedTotal(),
	}
	for _, c := range []prometheus.Collector{
		s.HTTPRequests, s.HTTPDuration,
		s.RateLimitExceeded, s.StoreReadRetries, s.PayoutsRecorded,
		s.PayoutWriteFailure, s.BalanceCache, s.DeliveriesIngested,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}
