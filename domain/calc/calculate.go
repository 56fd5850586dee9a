package calc

import "fmt"

// Calculate applies op to the given operands and returns the integer result
// or exactly one of the sentinel calculation errors. It is pure: no shared
// state, no side effects, safe for unlimited concurrent use.
//
// Arity is checked against the operation's own requirement, so a unary
// operation rejects a two-element list even though a binary one would accept
// it. An Operation value outside the enumerated set panics: operations are a
// closed set, so reaching the default branch is a programming defect, not a
// recoverable input error.
func Calculate(op Operation, operands []int64) (int64, error) {
	want := op.RequiredArgumentCount()
	if len(operands) < want {
		return 0, fmt.Errorf("%w: %s needs %d operand(s), got %d", ErrNotEnoughArguments, op, want, len(operands))
	}
	if len(operands) > want {
		return 0, fmt.Errorf("%w: %s needs %d operand(s), got %d", ErrTooManyArguments, op, want, len(operands))
	}

	switch op {
	case OpPlus:
		return operands[0] + operands[1], nil
	case OpMinus:
		return operands[0] - operands[1], nil
	case OpTimes:
		return operands[0] * operands[1], nil
	case OpDivide:
		if operands[1] == 0 {
			return 0, ErrDivideByZero
		}
		// Go's integer division truncates toward zero.
		return operands[0] / operands[1], nil
	case OpPow:
		return pow(operands[0], operands[1]), nil
	case OpAbs:
		if operands[0] < 0 {
			return -operands[0], nil
		}
		return operands[0], nil
	case OpFact:
		if operands[0] < 0 {
			return 0, ErrNegativeFactorial
		}
		return factorial(operands[0]), nil
	}

	panic(fmt.Sprintf("calc: unhandled operation %q", op))
}

// pow computes base**exp over int64 by binary exponentiation. Negative
// exponents follow integer truncation of the real result: 0 for |base| > 1,
// 1 for base 1, and parity-signed 1 for base -1.
func pow(base, exp int64) int64 {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		default:
			return 0
		}
	}

	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		exp >>= 1
		if exp > 0 {
			base *= base
		}
	}
	return result
}

// factorial computes n! as the product of 2..n. factorial(0) and
// factorial(1) are 1. The caller guarantees n >= 0.
func factorial(n int64) int64 {
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	return result
}
