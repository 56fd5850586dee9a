package stack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/calc-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// StackModule owns the shared operand stack and exposes it to other modules
// as request-reply services.
type StackModule struct {
	stack    *OperandStack
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*StackModule)(nil)
var _ mono.ServiceProviderModule = (*StackModule)(nil)
var _ mono.EventEmitterModule = (*StackModule)(nil)
var _ mono.HealthCheckableModule = (*StackModule)(nil)

// NewModule creates a new StackModule with an empty operand stack.
func NewModule() *StackModule {
	return &StackModule{
		stack: NewOperandStack(),
	}
}

// Name returns the module name.
func (m *StackModule) Name() string {
	return "stack"
}

// SetEventBus receives the framework event bus.
func (m *StackModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *StackModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OperandsPushedV1.ToBase(),
	}
}

// RegisterServices registers the stack's request-reply services.
func (m *StackModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "push-operands", json.Unmarshal, json.Marshal, m.pushOperands,
	); err != nil {
		return fmt.Errorf("failed to register push-operands service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "pop-operands", json.Unmarshal, json.Marshal, m.popOperands,
	); err != nil {
		return fmt.Errorf("failed to register pop-operands service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "stack-size", json.Unmarshal, json.Marshal, m.stackSize,
	); err != nil {
		return fmt.Errorf("failed to register stack-size service: %w", err)
	}

	log.Printf("[stack] Registered services: push-operands, pop-operands, stack-size")
	return nil
}

// pushOperands handles the push-operands service request.
func (m *StackModule) pushOperands(_ context.Context, req PushOperandsRequest, _ *mono.Msg) (PushOperandsResponse, error) {
	m.stack.Push(req.Operands)
	size := m.stack.Size()

	if m.eventBus != nil && len(req.Operands) > 0 {
		event := events.OperandsPushedEvent{
			Operands: req.Operands,
			Size:     size,
			PushedAt: time.Now(),
		}
		if err := events.OperandsPushedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[stack] Warning: failed to publish OperandsPushed event: %v", err)
		}
	}

	return PushOperandsResponse{Size: size}, nil
}

// popOperands handles the pop-operands service request. Pop failures are
// reported in the response body so callers can tell underflow (recoverable,
// stack unchanged) apart from transport failures.
func (m *StackModule) popOperands(_ context.Context, req PopOperandsRequest, _ *mono.Msg) (PopOperandsResponse, error) {
	operands, err := m.stack.TryPopN(req.Amount)
	if err != nil {
		resp := PopOperandsResponse{ErrorMessage: err.Error()}
		switch {
		case errors.Is(err, ErrNotEnoughOperands):
			resp.ErrorCode = CodeStackUnderflow
		case errors.Is(err, ErrNegativeAmount):
			resp.ErrorCode = CodeNegativeAmount
		default:
			return PopOperandsResponse{}, err
		}
		return resp, nil
	}
	return PopOperandsResponse{Operands: operands}, nil
}

// stackSize handles the stack-size service request.
func (m *StackModule) stackSize(_ context.Context, _ StackSizeRequest, _ *mono.Msg) (StackSizeResponse, error) {
	return StackSizeResponse{Size: m.stack.Size()}, nil
}

// Start initializes the module.
func (m *StackModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[stack] Warning: eventBus not set, push events will not be published")
	}
	log.Println("[stack] Module started with empty operand stack")
	return nil
}

// Stop shuts down the module.
func (m *StackModule) Stop(_ context.Context) error {
	log.Printf("[stack] Module stopped with %d operand(s) remaining", m.stack.Size())
	return nil
}

// Health returns the health status of the module.
func (m *StackModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"size": m.stack.Size(),
		},
	}
}
