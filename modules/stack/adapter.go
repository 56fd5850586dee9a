package stack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// stackAdapter wraps ServiceContainer for type-safe cross-module calls.
// It translates pop failure codes back into the package's sentinel errors so
// callers can use errors.Is across the module boundary.
type stackAdapter struct {
	container mono.ServiceContainer
}

// NewStackAdapter creates a new adapter for stack services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewStackAdapter(container mono.ServiceContainer) StackPort {
	if container == nil {
		panic("stack adapter requires non-nil ServiceContainer")
	}
	return &stackAdapter{container: container}
}

// Push pushes operands via the push-operands service.
func (a *stackAdapter) Push(ctx context.Context, operands []int64) (int, error) {
	req := PushOperandsRequest{Operands: operands}
	var resp PushOperandsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"push-operands",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return 0, fmt.Errorf("push-operands service call failed: %w", err)
	}
	return resp.Size, nil
}

// TryPopN pops operands via the pop-operands service.
func (a *stackAdapter) TryPopN(ctx context.Context, amount int) ([]int64, error) {
	req := PopOperandsRequest{Amount: amount}
	var resp PopOperandsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"pop-operands",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("pop-operands service call failed: %w", err)
	}

	switch resp.ErrorCode {
	case "":
	case CodeStackUnderflow:
		return nil, ErrNotEnoughOperands
	case CodeNegativeAmount:
		return nil, ErrNegativeAmount
	default:
		return nil, fmt.Errorf("pop-operands failed: %s", resp.ErrorMessage)
	}

	if resp.Operands == nil {
		return []int64{}, nil
	}
	return resp.Operands, nil
}

// Size reads the advisory element count via the stack-size service.
func (a *stackAdapter) Size(ctx context.Context) (int, error) {
	req := StackSizeRequest{}
	var resp StackSizeResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"stack-size",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return 0, fmt.Errorf("stack-size service call failed: %w", err)
	}
	return resp.Size, nil
}
