package app

import (
	"net/http"

	"go.uber.org/dig"

	"courier-payouts/internal/config"
	"courier-payouts/internal/http/middleware/ratelimit"
	"courier-payouts/internal/logx"
	"courier-payouts/internal/metrics"
)

type rateLimitersOut struct {
	dig.Out

	API   ratelimit.Limiter `name:"api_limiter"`
	Write ratelimit.Limiter `name:"write_limiter"`
}

func newRateLimiters(cfg *config.Config) rateLimitersOut {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return rateLimitersOut{API: ratelimit.NopLimiter{}, Write: ratelimit.NopLimiter{}}
	}
	clock := ratelimit.RealClock{}
	return rateLimitersOut{
		API: ratelimit.NewTokenBucket(clock, ratelimit.Config{
			Rate:       rl.Rate,
			Burst:      rl.Burst,
			TTL:        rl.TTL,
			MaxBuckets: rl.MaxBuckets,
		}),
		Write: ratelimit.NewTokenBucket(clock, ratelimit.Config{
			Rate:       rl.WriteRate,
			Burst:      rl.WriteBurst,
			TTL:        rl.TTL,
			MaxBuckets: rl.MaxBuckets,
		}),
	}
}

type rateLimitIn struct {
	dig.In

	Logger  logx.Logger
	Metrics *metrics.Set
	API     ratelimit.Limiter `name:"api_limiter"`
	Write   ratelimit.Limiter `name:"write_limiter"`
}

type rateLimitMiddlewares struct {
	API   func(http.Handler) http.Handler
	Write func(http.Handler) http.Handler
}

func newRateLimitMiddlewares(in rateLimitIn) rateLimitMiddlewares {
	return rateLimitMiddlewares{
		API: ratelimit.New(in.Logger, in.Metrics.RateLimitExceeded, in.API,
			ratelimit.WithScope("api"),
		).Handler(),
		Write: ratelimit.New(in.Logger, in.Metrics.RateLimitExceeded, in.Write,
			ratelimit.WithScope("ledger_write"),
			ratelimit.WithKeyFunc(ratelimit.ClientCourierKey),
		).Handler(),
	}
}
