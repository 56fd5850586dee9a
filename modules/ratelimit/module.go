package ratelimit

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Module owns the Redis connection backing the rate limiter and hands the
// API module a Fiber middleware. It is only registered when a Redis address
// is configured; without one the API runs unthrottled.
type Module struct {
	client  *redis.Client
	limiter *FixedWindowLimiter
	config  Config
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new rate limiting module.
func NewModule(config Config) *Module {
	return &Module{config: config}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "rate-limiter"
}

// Start connects to Redis and builds the limiter.
func (m *Module) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr: m.config.RedisAddr,
	})
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", m.config.RedisAddr, err)
	}

	m.limiter = NewFixedWindowLimiter(m.client, m.config)
	log.Printf("[rate-limiter] Module started - %d req / %s per IP (Redis %s)",
		m.config.RequestsPerWindow, m.config.Window, m.config.RedisAddr)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			log.Printf("[rate-limiter] Error closing Redis connection: %v", err)
		}
	}
	log.Println("[rate-limiter] Module stopped")
	return nil
}

// Health verifies the Redis connection.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{Healthy: false, Message: "redis client not initialized"}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{Healthy: false, Message: err.Error()}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// Middleware returns a Fiber handler limiting requests per client IP. Redis
// failures let the request through rather than failing the API on a limiter
// outage; the error is surfaced in a response header.
func (m *Module) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.limiter == nil {
			return c.Next()
		}

		result, err := m.limiter.Allow(c.Context(), c.IP())
		if err != nil {
			c.Set("X-RateLimit-Error", err.Error())
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.RequestsPerWindow))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			c.Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "Too many requests, slow down",
			})
		}

		return c.Next()
	}
}
