// Package ratelimit provides a Redis-backed fixed-window rate limiter
// applied as Fiber middleware in front of the calculation API.
package ratelimit

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter configuration.
type Config struct {
	// RedisAddr is the Redis server address. An empty address disables the
	// limiter entirely.
	RedisAddr string
	// RequestsPerWindow is the maximum number of requests per key per window.
	RequestsPerWindow int
	// Window is the fixed window duration.
	Window time.Duration
	// KeyPrefix namespaces all limiter keys in Redis.
	KeyPrefix string
}

// DefaultConfig returns the default limiter configuration: 120 requests per
// minute per client IP.
func DefaultConfig() Config {
	return Config{
		RequestsPerWindow: 120,
		Window:            time.Minute,
		KeyPrefix:         "calc:ratelimit:",
	}
}

// ConfigFromEnv builds a Config from REDIS_ADDR, RATE_LIMIT and RATE_WINDOW,
// falling back to defaults for anything unset or unparsable.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestsPerWindow = n
		}
	}
	if v := os.Getenv("RATE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Window = d
		}
	}
	return cfg
}

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// FixedWindowLimiter counts requests per key in fixed windows using a Redis
// counter with a window-length expiry.
type FixedWindowLimiter struct {
	client *redis.Client
	config Config
}

// NewFixedWindowLimiter creates a limiter on top of an existing Redis client.
func NewFixedWindowLimiter(client *redis.Client, config Config) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		config: config,
	}
}

// Allow increments the counter for key and reports whether the request fits
// in the current window. The first hit of a window sets the expiry, so a
// stale counter can never outlive its window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	redisKey := l.config.KeyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := int(incr.Val())
	if count > l.config.RequestsPerWindow {
		ttl, err := l.client.PTTL(ctx, redisKey).Result()
		if err != nil || ttl < 0 {
			ttl = l.config.Window
		}
		return &Result{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}

	return &Result{
		Allowed:   true,
		Remaining: l.config.RequestsPerWindow - count,
	}, nil
}
