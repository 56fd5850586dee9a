package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/calc-service/modules/history"
	"github.com/example/calc-service/modules/stack"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CalculatorModule orchestrates calculations: it validates and dispatches
// through the pure calc domain package, draws operands from the stack module
// for stack-flavored requests, and records every successful calculation in
// the history module.
type CalculatorModule struct {
	stackPort   stack.StackPort
	historyPort history.HistoryPort
}

// Compile-time interface checks.
var _ mono.Module = (*CalculatorModule)(nil)
var _ mono.ServiceProviderModule = (*CalculatorModule)(nil)
var _ mono.DependentModule = (*CalculatorModule)(nil)

// NewModule creates a new CalculatorModule.
func NewModule() *CalculatorModule {
	return &CalculatorModule{}
}

// Name returns the module name.
func (m *CalculatorModule) Name() string {
	return "calculator"
}

// Dependencies returns the list of module dependencies.
func (m *CalculatorModule) Dependencies() []string {
	return []string{"stack", "history"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *CalculatorModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "stack":
		m.stackPort = stack.NewStackAdapter(container)
	case "history":
		m.historyPort = history.NewHistoryAdapter(container)
	}
}

// RegisterServices registers the calculator request-reply services.
func (m *CalculatorModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "calculate-independent", json.Unmarshal, json.Marshal, m.calculateIndependent,
	); err != nil {
		return fmt.Errorf("failed to register calculate-independent service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "calculate-stack", json.Unmarshal, json.Marshal, m.calculateStack,
	); err != nil {
		return fmt.Errorf("failed to register calculate-stack service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "required-arguments", json.Unmarshal, json.Marshal, m.requiredArguments,
	); err != nil {
		return fmt.Errorf("failed to register required-arguments service: %w", err)
	}

	log.Printf("[calculator] Registered services: calculate-independent, calculate-stack, required-arguments")
	return nil
}

// Start initializes the module.
func (m *CalculatorModule) Start(_ context.Context) error {
	if m.stackPort == nil {
		return fmt.Errorf("stackPort dependency not set")
	}
	if m.historyPort == nil {
		return fmt.Errorf("historyPort dependency not set")
	}
	log.Println("[calculator] Module started (depends on: stack, history)")
	return nil
}

// Stop shuts down the module.
func (m *CalculatorModule) Stop(_ context.Context) error {
	log.Println("[calculator] Module stopped")
	return nil
}
