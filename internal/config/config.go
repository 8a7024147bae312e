package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port               int
	DB                 DB
	OperationTimeout   time.Duration
	PayoutWriteTimeout time.Duration
	StoreRetry         StoreRetry
	RateLimit          RateLimit
	Cache              Cache
	Balance            Balance
	Kafka              Kafka
	Pprof              Pprof
	Log                Log
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection URL.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// StoreRetry controls retries of read queries. Writes are never retried.
type StoreRetry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-client token bucket settings. Write* apply to ledger writes.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	WriteRate  float64
	WriteBurst int
	TTL        time.Duration
	MaxBuckets int
}

// Cache stores balance cache settings; an empty RedisURL disables caching.
type Cache struct {
	RedisURL string
	TTL      time.Duration
}

// Balance stores reconciler settings.
type Balance struct {
	SummaryConcurrency int
}

// Kafka stores delivered-order consumer settings; no brokers means the worker has nothing to do.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Pprof stores debug server settings; an empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Log stores logger settings.
type Log struct {
	Level   string
	Backend string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:               defaultPort,
		DB:                 defaultDB,
		OperationTimeout:   defaultOperationTimeout,
		PayoutWriteTimeout: defaultPayoutWriteTimeout,
		StoreRetry:         defaultStoreRetry,
		RateLimit:          defaultRateLimit,
		Cache:              defaultCache,
		Balance:            defaultBalance,
		Kafka:              defaultKafka,
		Log:                defaultLog,
	}

	e := &envReader{}
	e.int("PORT", &cfg.Port)

	e.str("POSTGRES_HOST", &cfg.DB.Host)
	e.port("POSTGRES_PORT", &cfg.DB.Port)
	e.str("POSTGRES_USER", &cfg.DB.User)
	e.str("POSTGRES_PASSWORD", &cfg.DB.Pass)
	e.str("POSTGRES_DB", &cfg.DB.Name)

	e.duration("OPERATION_TIMEOUT", &cfg.OperationTimeout)
	e.duration("PAYOUT_WRITE_TIMEOUT", &cfg.PayoutWriteTimeout)

	e.int("STORE_READ_MAX_ATTEMPTS", &cfg.StoreRetry.MaxAttempts)
	e.duration("STORE_READ_BASE_DELAY", &cfg.StoreRetry.BaseDelay)
	e.duration("STORE_READ_MAX_DELAY", &cfg.StoreRetry.MaxDelay)

	e.bool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	e.float("RATE_LIMIT_RPS", &cfg.RateLimit.Rate)
	e.int("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	e.float("RATE_LIMIT_WRITE_RPS", &cfg.RateLimit.WriteRate)
	e.int("RATE_LIMIT_WRITE_BURST", &cfg.RateLimit.WriteBurst)
	e.duration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	e.int("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	e.str("REDIS_URL", &cfg.Cache.RedisURL)
	e.duration("BALANCE_CACHE_TTL", &cfg.Cache.TTL)
	e.int("BALANCE_SUMMARY_CONCURRENCY", &cfg.Balance.SummaryConcurrency)

	e.list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	e.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	e.str("KAFKA_DELIVERIES_TOPIC", &cfg.Kafka.Topic)

	e.str("PPROF_ADDR", &cfg.Pprof.Addr)
	e.str("PPROF_USER", &cfg.Pprof.User)
	e.str("PPROF_PASS", &cfg.Pprof.Pass)

	e.str("LOG_LEVEL", &cfg.Log.Level)
	e.str("LOG_BACKEND", &cfg.Log.Backend)

	if e.err != nil {
		return nil, e.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid OPERATION_TIMEOUT: %s", c.OperationTimeout)
	}
	if c.PayoutWriteTimeout <= 0 {
		return fmt.Errorf("invalid PAYOUT_WRITE_TIMEOUT: %s", c.PayoutWriteTimeout)
	}
	if c.StoreRetry.MaxAttempts < 1 {
		return fmt.Errorf("invalid STORE_READ_MAX_ATTEMPTS: %d", c.StoreRetry.MaxAttempts)
	}
	if c.Balance.SummaryConcurrency < 1 {
		return fmt.Errorf("invalid BALANCE_SUMMARY_CONCURRENCY: %d", c.Balance.SummaryConcurrency)
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		return fmt.Errorf("invalid LOG_BACKEND: %q", c.Log.Backend)
	}
	return nil
}

// envReader collects the first parse error so Load can report it once.
type envReader struct{ err error }

func (e *envReader) lookup(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(key, v string, err error) {
	e.err = fmt.Errorf("invalid %s=%q: %w", key, v, err)
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) list(key string, dst *[]string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func (e *envReader) int(key string, dst *int) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) port(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			e.fail(key, v, fmt.Errorf("not a tcp port"))
			return
		}
		*dst = v
	}
}

func (e *envReader) float(key string, dst *float64) {
	if v, ok := e.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) bool(key string, dst *bool) {
	if v, ok := e.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}
