package stack

import (
	"errors"
	"sync"
)

// Sentinel errors for stack operations. Underflow is always recoverable: the
// stack is guaranteed unchanged, so callers may push more operands and retry.
var (
	// ErrNotEnoughOperands is returned by TryPopN when fewer operands are
	// present than requested.
	ErrNotEnoughOperands = errors.New("not enough operands on the stack")

	// ErrNegativeAmount is returned by TryPopN for a negative amount.
	ErrNegativeAmount = errors.New("pop amount must not be negative")
)

// Wire codes for stack failures, kept distinct from calculation error codes.
const (
	CodeStackUnderflow = "stack_underflow"
	CodeNegativeAmount = "negative_amount"
)

// OperandStack is a thread-safe LIFO store of integers shared by all
// stack-flavored calculations. All mutation happens under one mutex so that
// TryPopN's check-and-remove is a single atomic step: the stack loses exactly
// N elements or none, never a partial number, regardless of concurrent
// pushes and pops.
type OperandStack struct {
	mu     sync.Mutex
	values []int64
}

// NewOperandStack creates an empty operand stack.
func NewOperandStack() *OperandStack {
	return &OperandStack{}
}

// Push appends values to the stack. The last value of the input becomes the
// new top of the stack. Push has no failure mode.
func (s *OperandStack) Push(values []int64) {
	if len(values) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, values...)
}

// Size returns the current element count. The value is advisory only: under
// concurrent mutation it may be stale by the time the caller acts on it, so
// a subsequent TryPopN can still fail.
func (s *OperandStack) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// TryPopN removes exactly amount elements from the top of the stack and
// returns them in pop order (most-recently-pushed first). If amount is
// negative or the stack holds fewer than amount elements, TryPopN fails and
// the stack is left exactly as it was. The decision and the removal happen
// inside one critical section, so partial pops are impossible.
func (s *OperandStack) TryPopN(amount int) ([]int64, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if amount == 0 {
		return []int64{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) < amount {
		return nil, ErrNotEnoughOperands
	}

	popped := make([]int64, amount)
	top := len(s.values)
	for i := 0; i < amount; i++ {
		popped[i] = s.values[top-1-i]
	}
	s.values = s.values[:top-amount]
	return popped, nil
}
