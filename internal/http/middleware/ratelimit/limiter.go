package ratelimit

import "time"

// Limiter decides whether the caller identified by key may proceed. When it may not,
// retryAfter says how long until the next request would be admitted.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the default clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits everything; used when rate limiting is disabled.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) (bool, time.Duration) { return true, 0 }
