package calc

import "errors"

// Sentinel errors for calculation failures. The set is closed and the
// variants are mutually exclusive: exactly one applies per failed attempt.
var (
	// ErrNotEnoughArguments is returned when fewer operands are supplied
	// than the operation's arity requires.
	ErrNotEnoughArguments = errors.New("not enough arguments")

	// ErrTooManyArguments is returned when more operands are supplied than
	// the operation's arity allows.
	ErrTooManyArguments = errors.New("too many arguments")

	// ErrDivideByZero is returned when the divisor of a divide operation is 0.
	ErrDivideByZero = errors.New("division by zero")

	// ErrNegativeFactorial is returned when fact is applied to a negative
	// operand.
	ErrNegativeFactorial = errors.New("factorial of a negative number is not supported")

	// ErrUnknownOperation is a boundary parse failure, not a calculation
	// error: it never reaches Calculate.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnknownFlavor is a boundary parse failure for history queries.
	ErrUnknownFlavor = errors.New("unknown flavor")
)

// Stable wire codes for each error, used in service responses so callers can
// distinguish failure kinds without string matching.
const (
	CodeNotEnoughArguments = "not_enough_arguments"
	CodeTooManyArguments   = "too_many_arguments"
	CodeDivideByZero       = "divide_by_zero"
	CodeNegativeFactorial  = "negative_factorial"
	CodeUnknownOperation   = "unknown_operation"
	CodeUnknownFlavor      = "unknown_flavor"
)

// ErrorCode maps a calculation or parse error to its wire code. Unrecognized
// errors map to the empty string.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotEnoughArguments):
		return CodeNotEnoughArguments
	case errors.Is(err, ErrTooManyArguments):
		return CodeTooManyArguments
	case errors.Is(err, ErrDivideByZero):
		return CodeDivideByZero
	case errors.Is(err, ErrNegativeFactorial):
		return CodeNegativeFactorial
	case errors.Is(err, ErrUnknownOperation):
		return CodeUnknownOperation
	case errors.Is(err, ErrUnknownFlavor):
		return CodeUnknownFlavor
	}
	return ""
}
