package calc

import (
	"fmt"
	"time"
)

// Operation identifies one of the supported arithmetic operations.
// The set is closed: every value below must be handled by Calculate.
type Operation string

const (
	OpPlus   Operation = "plus"
	OpMinus  Operation = "minus"
	OpTimes  Operation = "times"
	OpDivide Operation = "divide"
	OpPow    Operation = "pow"
	OpAbs    Operation = "abs"
	OpFact   Operation = "fact"
)

// Operations lists every supported operation.
var Operations = []Operation{OpPlus, OpMinus, OpTimes, OpDivide, OpPow, OpAbs, OpFact}

// ParseOperation converts an operation name from the transport layer into an
// Operation. Unknown names are a parse failure, not a calculation error.
func ParseOperation(name string) (Operation, error) {
	switch op := Operation(name); op {
	case OpPlus, OpMinus, OpTimes, OpDivide, OpPow, OpAbs, OpFact:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// RequiredArgumentCount returns the fixed arity of the operation: 2 for the
// binary operations, 1 for abs and fact. It panics on an Operation value
// outside the enumerated set, since such a value can only be produced by a
// bug in this package's callers, never by user input (ParseOperation rejects
// unknown names at the boundary).
func (op Operation) RequiredArgumentCount() int {
	switch op {
	case OpPlus, OpMinus, OpTimes, OpDivide, OpPow:
		return 2
	case OpAbs, OpFact:
		return 1
	}
	panic(fmt.Sprintf("calc: arity requested for unknown operation %q", op))
}

// Flavor identifies which entry path produced a calculation.
type Flavor string

const (
	// FlavorStack marks calculations whose operands came off the shared
	// operand stack.
	FlavorStack Flavor = "stack"
	// FlavorIndependent marks calculations that carried their own operands.
	FlavorIndependent Flavor = "independent"
)

// ParseFlavor converts a flavor name into a Flavor.
func ParseFlavor(name string) (Flavor, error) {
	switch f := Flavor(name); f {
	case FlavorStack, FlavorIndependent:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlavor, name)
}

// Calculation is an immutable record of one completed calculation. It is
// created once, appended to the history log and never mutated or removed.
type Calculation struct {
	ID         string    `json:"id"`
	Flavor     Flavor    `json:"flavor"`
	Operation  Operation `json:"operation"`
	Operands   []int64   `json:"operands"`
	Result     int64     `json:"result"`
	RecordedAt time.Time `json:"recorded_at"`
}
