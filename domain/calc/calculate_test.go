package calc

import (
	"errors"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		operands []int64
		want     int64
	}{
		{name: "plus", op: OpPlus, operands: []int64{2, 3}, want: 5},
		{name: "plus negative", op: OpPlus, operands: []int64{-2, 3}, want: 1},
		{name: "minus", op: OpMinus, operands: []int64{3, 7}, want: -4},
		{name: "times", op: OpTimes, operands: []int64{4, -5}, want: -20},
		{name: "divide truncates toward zero", op: OpDivide, operands: []int64{7, 2}, want: 3},
		{name: "divide negative truncates toward zero", op: OpDivide, operands: []int64{-7, 2}, want: -3},
		{name: "pow", op: OpPow, operands: []int64{2, 10}, want: 1024},
		{name: "pow zero exponent", op: OpPow, operands: []int64{9, 0}, want: 1},
		{name: "pow negative exponent truncates", op: OpPow, operands: []int64{2, -3}, want: 0},
		{name: "pow negative base odd exponent", op: OpPow, operands: []int64{-3, 3}, want: -27},
		{name: "abs negative", op: OpAbs, operands: []int64{-8}, want: 8},
		{name: "abs positive", op: OpAbs, operands: []int64{8}, want: 8},
		{name: "fact zero", op: OpFact, operands: []int64{0}, want: 1},
		{name: "fact one", op: OpFact, operands: []int64{1}, want: 1},
		{name: "fact five", op: OpFact, operands: []int64{5}, want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.op, tt.operands)
			if err != nil {
				t.Fatalf("Calculate(%s, %v) unexpected error: %v", tt.op, tt.operands, err)
			}
			if got != tt.want {
				t.Errorf("Calculate(%s, %v) = %d, want %d", tt.op, tt.operands, got, tt.want)
			}
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		operands []int64
		wantErr  error
	}{
		{name: "divide by zero", op: OpDivide, operands: []int64{5, 0}, wantErr: ErrDivideByZero},
		{name: "divide zero by zero", op: OpDivide, operands: []int64{0, 0}, wantErr: ErrDivideByZero},
		{name: "negative factorial", op: OpFact, operands: []int64{-1}, wantErr: ErrNegativeFactorial},
		{name: "binary op with one operand", op: OpPlus, operands: []int64{1}, wantErr: ErrNotEnoughArguments},
		{name: "binary op with no operands", op: OpTimes, operands: nil, wantErr: ErrNotEnoughArguments},
		{name: "binary op with three operands", op: OpMinus, operands: []int64{1, 2, 3}, wantErr: ErrTooManyArguments},
		{name: "unary op with two operands", op: OpAbs, operands: []int64{1, 2}, wantErr: ErrTooManyArguments},
		{name: "unary op with no operands", op: OpFact, operands: []int64{}, wantErr: ErrNotEnoughArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.op, tt.operands)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Calculate(%s, %v) error = %v, want %v", tt.op, tt.operands, err, tt.wantErr)
			}
		})
	}
}

func TestCalculate_ArityPrecedesPreconditions(t *testing.T) {
	// A wrong operand count is reported before any numeric precondition:
	// divide with a trailing zero but three operands is an arity error.
	_, err := Calculate(OpDivide, []int64{1, 0, 0})
	if !errors.Is(err, ErrTooManyArguments) {
		t.Errorf("Calculate(divide, [1 0 0]) error = %v, want %v", err, ErrTooManyArguments)
	}
}

func TestCalculate_UnknownOperationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Calculate with an out-of-set operation should panic")
		}
	}()
	_, _ = Calculate(Operation("modulo"), []int64{1, 2})
}
