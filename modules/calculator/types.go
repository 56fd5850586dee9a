package calculator

import (
	"context"

	"github.com/example/calc-service/domain/calc"
)

// CalculateIndependentRequest is the request for a stateless calculation
// carrying its own operands.
type CalculateIndependentRequest struct {
	Operation string  `json:"operation"`
	Operands  []int64 `json:"operands"`
}

// CalculateStackRequest is the request for a stateful calculation that draws
// its operands from the shared operand stack.
type CalculateStackRequest struct {
	Operation string `json:"operation"`
}

// CalculateResponse is the response for either calculation flavor. On
// failure Calculation is nil and ErrorCode identifies exactly one failure
// kind (calculation error, unknown operation, or stack underflow).
type CalculateResponse struct {
	Calculation  *calc.Calculation `json:"calculation,omitempty"`
	ErrorCode    string            `json:"error_code,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// RequiredArgumentsRequest is the request for an operation's arity.
type RequiredArgumentsRequest struct {
	Operation string `json:"operation"`
}

// RequiredArgumentsResponse is the response carrying the fixed arity.
type RequiredArgumentsResponse struct {
	Count        int    `json:"count"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// CalculatorPort defines the interface driving adapters use to run
// calculations (hexagonal port).
type CalculatorPort interface {
	// CalculateIndependent validates and computes with the supplied operands.
	CalculateIndependent(ctx context.Context, operation string, operands []int64) (*CalculateResponse, error)

	// CalculateStack pops the operation's arity off the shared stack and
	// computes with the popped operands (most-recently-pushed first).
	CalculateStack(ctx context.Context, operation string) (*CalculateResponse, error)

	// RequiredArguments reports the fixed arity of an operation name.
	RequiredArguments(ctx context.Context, operation string) (*RequiredArgumentsResponse, error)
}
