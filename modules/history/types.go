package history

import (
	"context"

	"github.com/example/calc-service/domain/calc"
)

// RecordCalculationRequest is the request for appending a completed
// calculation to the log.
type RecordCalculationRequest struct {
	Flavor    string  `json:"flavor"`
	Operation string  `json:"operation"`
	Operands  []int64 `json:"operands"`
	Result    int64   `json:"result"`
}

// RecordCalculationResponse is the response for an append. ErrorCode is set
// when the flavor or operation name fails to parse.
type RecordCalculationResponse struct {
	Calculation  *calc.Calculation `json:"calculation,omitempty"`
	ErrorCode    string            `json:"error_code,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// QueryHistoryRequest is the request for reading the log. An empty Flavor
// selects both segments.
type QueryHistoryRequest struct {
	Flavor string `json:"flavor,omitempty"`
}

// QueryHistoryResponse is the response carrying a snapshot of matching
// entries.
type QueryHistoryResponse struct {
	Calculations []calc.Calculation `json:"calculations"`
	Total        int                `json:"total"`
	ErrorCode    string             `json:"error_code,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

// HistoryPort defines the interface other modules use to reach the history
// log (hexagonal port).
type HistoryPort interface {
	// Record appends one completed calculation and returns the stored entry.
	Record(ctx context.Context, flavor calc.Flavor, op calc.Operation, operands []int64, result int64) (*calc.Calculation, error)

	// Query returns a snapshot of entries for one flavor, or of both
	// segments when flavor is empty.
	Query(ctx context.Context, flavor string) ([]calc.Calculation, error)
}
