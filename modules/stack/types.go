package stack

import "context"

// PushOperandsRequest is the request for pushing operands onto the stack.
type PushOperandsRequest struct {
	Operands []int64 `json:"operands"`
}

// PushOperandsResponse is the response for a push; Size is the element count
// right after the push (advisory under concurrency).
type PushOperandsResponse struct {
	Size int `json:"size"`
}

// PopOperandsRequest is the request for atomically popping Amount operands.
type PopOperandsRequest struct {
	Amount int `json:"amount"`
}

// PopOperandsResponse is the response for a pop. On failure Operands is nil
// and ErrorCode identifies the failure; the stack is unchanged.
type PopOperandsResponse struct {
	Operands     []int64 `json:"operands,omitempty"`
	ErrorCode    string  `json:"error_code,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// StackSizeRequest is the request for the current stack size.
type StackSizeRequest struct{}

// StackSizeResponse is the response carrying the current element count.
type StackSizeResponse struct {
	Size int `json:"size"`
}

// StackPort defines the interface other modules use to reach the operand
// stack (hexagonal port).
type StackPort interface {
	// Push appends operands; the last element becomes the new top.
	Push(ctx context.Context, operands []int64) (int, error)

	// TryPopN atomically removes amount operands, returned most-recent
	// first, or fails leaving the stack unchanged.
	TryPopN(ctx context.Context, amount int) ([]int64, error)

	// Size reports the advisory element count.
	Size(ctx context.Context) (int, error)
}
