package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/calc-service/domain/calc"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// historyAdapter wraps ServiceContainer for type-safe cross-module calls.
type historyAdapter struct {
	container mono.ServiceContainer
}

// NewHistoryAdapter creates a new adapter for history services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewHistoryAdapter(container mono.ServiceContainer) HistoryPort {
	if container == nil {
		panic("history adapter requires non-nil ServiceContainer")
	}
	return &historyAdapter{container: container}
}

// Record appends a completed calculation via the record-calculation service.
func (a *historyAdapter) Record(ctx context.Context, flavor calc.Flavor, op calc.Operation, operands []int64, result int64) (*calc.Calculation, error) {
	req := RecordCalculationRequest{
		Flavor:    string(flavor),
		Operation: string(op),
		Operands:  operands,
		Result:    result,
	}
	var resp RecordCalculationResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"record-calculation",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("record-calculation service call failed: %w", err)
	}
	if resp.ErrorCode != "" {
		return nil, fmt.Errorf("record-calculation rejected: %s", resp.ErrorMessage)
	}
	return resp.Calculation, nil
}

// Query reads a history snapshot via the query-history service. An empty
// flavor selects both segments.
func (a *historyAdapter) Query(ctx context.Context, flavor string) ([]calc.Calculation, error) {
	req := QueryHistoryRequest{Flavor: flavor}
	var resp QueryHistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"query-history",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("query-history service call failed: %w", err)
	}
	if resp.ErrorCode == calc.CodeUnknownFlavor {
		return nil, fmt.Errorf("%w: %q", calc.ErrUnknownFlavor, flavor)
	}
	if resp.ErrorCode != "" {
		return nil, fmt.Errorf("query-history rejected: %s", resp.ErrorMessage)
	}
	return resp.Calculations, nil
}
