package feed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/calc-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Frame is the JSON envelope pushed to feed subscribers, one per event.
type Frame struct {
	Type       string    `json:"type"`
	ID         string    `json:"id,omitempty"`
	Flavor     string    `json:"flavor,omitempty"`
	Operation  string    `json:"operation,omitempty"`
	Operands   []int64   `json:"operands,omitempty"`
	Result     int64     `json:"result,omitempty"`
	StackSize  int       `json:"stack_size,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Frame types.
const (
	FrameCalculation = "calculation"
	FramePush        = "push"
)

// FeedModule consumes calculation and stack events and broadcasts them to
// WebSocket subscribers through its hub.
type FeedModule struct {
	hub       *Hub
	cancelHub context.CancelFunc
}

// Compile-time interface checks.
var _ mono.Module = (*FeedModule)(nil)
var _ mono.EventConsumerModule = (*FeedModule)(nil)
var _ mono.HealthCheckableModule = (*FeedModule)(nil)

// NewModule creates a new FeedModule.
func NewModule() *FeedModule {
	return &FeedModule{
		hub: NewHub(),
	}
}

// Name returns the module name.
func (m *FeedModule) Name() string {
	return "feed"
}

// GetHub exposes the hub so the API module can register WebSocket clients.
func (m *FeedModule) GetHub() *Hub {
	return m.hub
}

// RegisterEventConsumers registers event handlers.
func (m *FeedModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.CalculationRecordedV1, m.handleCalculationRecorded, m,
	); err != nil {
		return fmt.Errorf("failed to register CalculationRecorded consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.OperandsPushedV1, m.handleOperandsPushed, m,
	); err != nil {
		return fmt.Errorf("failed to register OperandsPushed consumer: %w", err)
	}

	log.Println("[feed] Registered event consumers: CalculationRecorded, OperandsPushed")
	return nil
}

func (m *FeedModule) handleCalculationRecorded(_ context.Context, event events.CalculationRecordedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(Frame{
		Type:       FrameCalculation,
		ID:         event.ID,
		Flavor:     event.Flavor,
		Operation:  event.Operation,
		Operands:   event.Operands,
		Result:     event.Result,
		OccurredAt: event.RecordedAt,
	})
	return nil
}

func (m *FeedModule) handleOperandsPushed(_ context.Context, event events.OperandsPushedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(Frame{
		Type:       FramePush,
		Operands:   event.Operands,
		StackSize:  event.Size,
		OccurredAt: event.PushedAt,
	})
	return nil
}

// Start runs the hub loop.
func (m *FeedModule) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	log.Println("[feed] Module started - WebSocket hub running")
	return nil
}

// Stop shuts down the hub and its client connections.
func (m *FeedModule) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	log.Printf("[feed] Module stopped - %d clients were connected", clientCount)
	return nil
}

// Health returns the health status of the module.
func (m *FeedModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}
