package api

import "time"

// CalculateRequest is the HTTP request for an independent calculation.
type CalculateRequest struct {
	Operation string  `json:"operation"`
	Operands  []int64 `json:"operands"`
}

// StackCalculateRequest is the HTTP request for a stack-flavored calculation.
// The operands come off the shared stack, so only the operation is supplied.
type StackCalculateRequest struct {
	Operation string `json:"operation"`
}

// PushOperandsRequest is the HTTP request for pushing operands onto the stack.
type PushOperandsRequest struct {
	Operands []int64 `json:"operands"`
}

// CalculationResponse is the HTTP response for a completed calculation.
type CalculationResponse struct {
	ID         string    `json:"id"`
	Flavor     string    `json:"flavor"`
	Operation  string    `json:"operation"`
	Operands   []int64   `json:"operands"`
	Result     int64     `json:"result"`
	RecordedAt time.Time `json:"recorded_at"`
}

// StackResponse is the HTTP response for stack size queries and pushes.
type StackResponse struct {
	Size int `json:"size"`
}

// HistoryResponse is the HTTP response for history queries.
type HistoryResponse struct {
	Calculations []CalculationResponse `json:"calculations"`
	Total        int                   `json:"total"`
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
