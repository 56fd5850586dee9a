package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/calc-service/domain/calc"
	"github.com/example/calc-service/modules/stack"
	"github.com/go-monolith/mono"
)

// calculateIndependent handles the calculate-independent service request.
// The caller supplies the full operand list; nothing touches the shared
// stack.
func (m *CalculatorModule) calculateIndependent(ctx context.Context, req CalculateIndependentRequest, _ *mono.Msg) (CalculateResponse, error) {
	op, err := calc.ParseOperation(req.Operation)
	if err != nil {
		return failureResponse(err), nil
	}

	result, err := calc.Calculate(op, req.Operands)
	if err != nil {
		return failureResponse(err), nil
	}

	entry, err := m.historyPort.Record(ctx, calc.FlavorIndependent, op, req.Operands, result)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("failed to record calculation: %w", err)
	}

	return CalculateResponse{Calculation: entry}, nil
}

// calculateStack handles the calculate-stack service request. The operation's
// arity is popped atomically off the shared stack; popped values feed the
// calculation most-recently-pushed first. On underflow the stack is
// guaranteed unchanged and the caller may push more operands and retry.
// Operands consumed by a calculation that then fails its numeric
// precondition are not restored: only the pop itself is atomic.
func (m *CalculatorModule) calculateStack(ctx context.Context, req CalculateStackRequest, _ *mono.Msg) (CalculateResponse, error) {
	op, err := calc.ParseOperation(req.Operation)
	if err != nil {
		return failureResponse(err), nil
	}

	operands, err := m.stackPort.TryPopN(ctx, op.RequiredArgumentCount())
	if err != nil {
		if errors.Is(err, stack.ErrNotEnoughOperands) {
			return CalculateResponse{
				ErrorCode:    stack.CodeStackUnderflow,
				ErrorMessage: err.Error(),
			}, nil
		}
		return CalculateResponse{}, fmt.Errorf("failed to pop operands: %w", err)
	}

	result, err := calc.Calculate(op, operands)
	if err != nil {
		return failureResponse(err), nil
	}

	entry, err := m.historyPort.Record(ctx, calc.FlavorStack, op, operands, result)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("failed to record calculation: %w", err)
	}

	return CalculateResponse{Calculation: entry}, nil
}

// requiredArguments handles the required-arguments service request.
func (m *CalculatorModule) requiredArguments(_ context.Context, req RequiredArgumentsRequest, _ *mono.Msg) (RequiredArgumentsResponse, error) {
	op, err := calc.ParseOperation(req.Operation)
	if err != nil {
		return RequiredArgumentsResponse{
			ErrorCode:    calc.ErrorCode(err),
			ErrorMessage: err.Error(),
		}, nil
	}
	return RequiredArgumentsResponse{Count: op.RequiredArgumentCount()}, nil
}

// failureResponse converts a domain error into a coded response. Domain
// failures travel in the response body, not as service errors, so callers
// can distinguish each kind without unwrapping transport failures.
func failureResponse(err error) CalculateResponse {
	return CalculateResponse{
		ErrorCode:    calc.ErrorCode(err),
		ErrorMessage: err.Error(),
	}
}
