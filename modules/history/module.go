package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/example/calc-service/domain/calc"
	"github.com/example/calc-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// HistoryModule owns the append-only calculation log and exposes it as
// request-reply services. Each successful append is also published on the
// event bus for live consumers.
type HistoryModule struct {
	log      *Log
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*HistoryModule)(nil)
var _ mono.ServiceProviderModule = (*HistoryModule)(nil)
var _ mono.EventEmitterModule = (*HistoryModule)(nil)
var _ mono.HealthCheckableModule = (*HistoryModule)(nil)

// NewModule creates a new HistoryModule with an empty log.
func NewModule() *HistoryModule {
	return &HistoryModule{
		log: NewLog(),
	}
}

// Name returns the module name.
func (m *HistoryModule) Name() string {
	return "history"
}

// SetEventBus receives the framework event bus.
func (m *HistoryModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *HistoryModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CalculationRecordedV1.ToBase(),
	}
}

// RegisterServices registers the history request-reply services.
func (m *HistoryModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "record-calculation", json.Unmarshal, json.Marshal, m.recordCalculation,
	); err != nil {
		return fmt.Errorf("failed to register record-calculation service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "query-history", json.Unmarshal, json.Marshal, m.queryHistory,
	); err != nil {
		return fmt.Errorf("failed to register query-history service: %w", err)
	}

	log.Printf("[history] Registered services: record-calculation, query-history")
	return nil
}

// recordCalculation handles the record-calculation service request.
func (m *HistoryModule) recordCalculation(_ context.Context, req RecordCalculationRequest, _ *mono.Msg) (RecordCalculationResponse, error) {
	flavor, err := calc.ParseFlavor(req.Flavor)
	if err != nil {
		return RecordCalculationResponse{
			ErrorCode:    calc.ErrorCode(err),
			ErrorMessage: err.Error(),
		}, nil
	}
	op, err := calc.ParseOperation(req.Operation)
	if err != nil {
		return RecordCalculationResponse{
			ErrorCode:    calc.ErrorCode(err),
			ErrorMessage: err.Error(),
		}, nil
	}

	entry := calc.Calculation{
		ID:         uuid.New().String(),
		Flavor:     flavor,
		Operation:  op,
		Operands:   req.Operands,
		Result:     req.Result,
		RecordedAt: time.Now(),
	}
	m.log.Append(entry)

	if m.eventBus != nil {
		event := events.CalculationRecordedEvent{
			ID:         entry.ID,
			Flavor:     string(entry.Flavor),
			Operation:  string(entry.Operation),
			Operands:   entry.Operands,
			Result:     entry.Result,
			RecordedAt: entry.RecordedAt,
		}
		if err := events.CalculationRecordedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[history] Warning: failed to publish CalculationRecorded event for %s: %v", entry.ID, err)
		}
	}

	return RecordCalculationResponse{Calculation: &entry}, nil
}

// queryHistory handles the query-history service request.
func (m *HistoryModule) queryHistory(_ context.Context, req QueryHistoryRequest, _ *mono.Msg) (QueryHistoryResponse, error) {
	var entries []calc.Calculation
	if req.Flavor == "" {
		entries = m.log.QueryAll()
	} else {
		flavor, err := calc.ParseFlavor(req.Flavor)
		if err != nil {
			return QueryHistoryResponse{
				ErrorCode:    calc.ErrorCode(err),
				ErrorMessage: err.Error(),
			}, nil
		}
		entries = m.log.Query(flavor)
	}

	return QueryHistoryResponse{
		Calculations: entries,
		Total:        len(entries),
	}, nil
}

// Start initializes the module.
func (m *HistoryModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[history] Warning: eventBus not set, events will not be published")
	}
	log.Println("[history] Module started with empty log")
	return nil
}

// Stop shuts down the module.
func (m *HistoryModule) Stop(_ context.Context) error {
	log.Printf("[history] Module stopped with %d stack / %d independent entries",
		m.log.Len(calc.FlavorStack), m.log.Len(calc.FlavorIndependent))
	return nil
}

// Health returns the health status of the module.
func (m *HistoryModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"stack_entries":       m.log.Len(calc.FlavorStack),
			"independent_entries": m.log.Len(calc.FlavorIndependent),
		},
	}
}
