package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/calc-service/modules/api"
	"github.com/example/calc-service/modules/calculator"
	"github.com/example/calc-service/modules/feed"
	"github.com/example/calc-service/modules/history"
	"github.com/example/calc-service/modules/ratelimit"
	"github.com/example/calc-service/modules/stack"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Calculation Service ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	feedModule := feed.NewModule()
	apiModule := api.NewModule()
	apiModule.SetHub(feedModule.GetHub())

	// Rate limiting is optional: only wired when Redis is configured.
	if cfg := ratelimit.ConfigFromEnv(); cfg.RedisAddr != "" {
		limiterModule := ratelimit.NewModule(cfg)
		apiModule.SetRateLimiter(limiterModule)
		app.Register(limiterModule)
	}

	// Register modules with the framework.
	// The framework automatically handles:
	// - ServiceProviderModule.RegisterServices() for request-reply services
	// - DependentModule.SetDependencyServiceContainer() for cross-module communication
	// - EventBusAwareModule.SetEventBus() for event publishing
	// - EventConsumerModule.RegisterEventConsumers() for event subscriptions
	//
	// Order: independent modules first, then modules with dependencies
	app.Register(stack.NewModule())      // Shared operand stack (no dependencies)
	app.Register(history.NewModule())    // Append-only calculation log (no dependencies)
	app.Register(feedModule)             // Event consumer (broadcasts over WebSocket)
	app.Register(calculator.NewModule()) // Core domain (depends on stack, history)
	app.Register(apiModule)              // Driving adapter (depends on calculator)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Supported operations:")
	log.Println("  plus, minus, times, divide (2 operands)")
	log.Println("  pow (base, exponent)")
	log.Println("  abs, fact (1 operand)")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("  POST   /api/v1/calculations       - Calculate with supplied operands")
	log.Println("  POST   /api/v1/stack/calculations - Calculate with operands popped off the stack")
	log.Println("  POST   /api/v1/stack/operands     - Push operands onto the stack")
	log.Println("  GET    /api/v1/stack              - Current stack size")
	log.Println("  GET    /api/v1/history            - Recorded calculations (?flavor=stack|independent)")
	log.Println("  GET    /ws/feed                   - WebSocket feed of calculations and pushes")
	log.Println("  GET    /health                    - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
