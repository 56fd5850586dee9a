package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// calculatorAdapter wraps ServiceContainer for type-safe cross-module calls.
type calculatorAdapter struct {
	container mono.ServiceContainer
}

// NewCalculatorAdapter creates a new adapter for calculator services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewCalculatorAdapter(container mono.ServiceContainer) CalculatorPort {
	if container == nil {
		panic("calculator adapter requires non-nil ServiceContainer")
	}
	return &calculatorAdapter{container: container}
}

// CalculateIndependent runs a stateless calculation via the
// calculate-independent service.
func (a *calculatorAdapter) CalculateIndependent(ctx context.Context, operation string, operands []int64) (*CalculateResponse, error) {
	req := CalculateIndependentRequest{Operation: operation, Operands: operands}
	var resp CalculateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"calculate-independent",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("calculate-independent service call failed: %w", err)
	}
	return &resp, nil
}

// CalculateStack runs a stack-flavored calculation via the calculate-stack
// service.
func (a *calculatorAdapter) CalculateStack(ctx context.Context, operation string) (*CalculateResponse, error) {
	req := CalculateStackRequest{Operation: operation}
	var resp CalculateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"calculate-stack",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("calculate-stack service call failed: %w", err)
	}
	return &resp, nil
}

// RequiredArguments reads an operation's arity via the required-arguments
// service.
func (a *calculatorAdapter) RequiredArguments(ctx context.Context, operation string) (*RequiredArgumentsResponse, error) {
	req := RequiredArgumentsRequest{Operation: operation}
	var resp RequiredArgumentsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"required-arguments",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("required-arguments service call failed: %w", err)
	}
	return &resp, nil
}
