package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/calc-service/modules/calculator"
	"github.com/example/calc-service/modules/feed"
	"github.com/example/calc-service/modules/history"
	"github.com/example/calc-service/modules/ratelimit"
	"github.com/example/calc-service/modules/stack"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jaevor/go-nanoid"
)

// APIModule is the driving adapter exposing the calculator over HTTP and
// WebSocket. It calls into the core modules via their port interfaces.
type APIModule struct {
	app            *fiber.App
	calcAdapter    calculator.CalculatorPort
	stackAdapter   stack.StackPort
	historyAdapter history.HistoryPort
	hub            *feed.Hub
	limiter        *ratelimit.Module
	port           string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{
		port: port,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"calculator", "stack", "history"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "calculator":
		m.calcAdapter = calculator.NewCalculatorAdapter(container)
	case "stack":
		m.stackAdapter = stack.NewStackAdapter(container)
	case "history":
		m.historyAdapter = history.NewHistoryAdapter(container)
	}
}

// SetHub sets the feed hub (called from main.go).
func (m *APIModule) SetHub(hub *feed.Hub) {
	m.hub = hub
}

// SetRateLimiter sets the optional rate limiter (called from main.go when
// Redis is configured).
func (m *APIModule) SetRateLimiter(limiter *ratelimit.Module) {
	m.limiter = limiter
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.calcAdapter == nil {
		return fmt.Errorf("calculator adapter dependency not set")
	}
	if m.stackAdapter == nil {
		return fmt.Errorf("stack adapter dependency not set")
	}
	if m.historyAdapter == nil {
		return fmt.Errorf("history adapter dependency not set")
	}
	if m.hub == nil {
		return fmt.Errorf("feed hub dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	m.app.Use(recover.New())
	m.app.Use(requestIDMiddleware())
	if m.limiter != nil {
		m.app.Use(m.limiter.Middleware())
	}

	m.setupRoutes()

	// Start server in goroutine.
	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	details := map[string]any{
		"port": m.port,
	}
	if m.hub != nil {
		details["feed_subscribers"] = m.hub.ClientCount()
	}
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: details,
	}
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

// requestIDMiddleware tags every request with a nanoid request ID.
func requestIDMiddleware() fiber.Handler {
	generate, err := nanoid.Standard(21)
	if err != nil {
		// nanoid.Standard only fails for out-of-range lengths.
		panic(fmt.Sprintf("api: failed to build request ID generator: %v", err))
	}
	return requestid.New(requestid.Config{
		Generator: generate,
	})
}
