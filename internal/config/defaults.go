package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "payouts_db",
}

const (
	defaultOperationTimeout   = 3 * time.Second
	defaultPayoutWriteTimeout = 5 * time.Second
)

var defaultStoreRetry = StoreRetry{
	MaxAttempts: 3,
	BaseDelay:   100 * time.Millisecond,
	MaxDelay:    400 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	WriteRate:  2,
	WriteBurst: 5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultCache = Cache{
	TTL: 30 * time.Second,
}

var defaultBalance = Balance{
	SummaryConcurrency: 8,
}

var defaultKafka = Kafka{
	GroupID: "courier-payouts-deliveries",
	Topic:   "orders.delivered",
}

var defaultLog = Log{
	Level:   "info",
	Backend: "slog",
}

// DefaultPort returns the default port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultStoreRetry returns the default read-retry settings.
func DefaultStoreRetry() StoreRetry { return defaultStoreRetry }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }
