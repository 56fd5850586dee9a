package calculator

import (
	"context"
	"testing"

	"github.com/example/calc-service/domain/calc"
	"github.com/example/calc-service/modules/stack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStackPort backs the port with a real operand stack, skipping the
// service container.
type fakeStackPort struct {
	stack *stack.OperandStack
}

func (f *fakeStackPort) Push(_ context.Context, operands []int64) (int, error) {
	f.stack.Push(operands)
	return f.stack.Size(), nil
}

func (f *fakeStackPort) TryPopN(_ context.Context, amount int) ([]int64, error) {
	return f.stack.TryPopN(amount)
}

func (f *fakeStackPort) Size(_ context.Context) (int, error) {
	return f.stack.Size(), nil
}

// fakeHistoryPort records appends in memory.
type fakeHistoryPort struct {
	entries []calc.Calculation
}

func (f *fakeHistoryPort) Record(_ context.Context, flavor calc.Flavor, op calc.Operation, operands []int64, result int64) (*calc.Calculation, error) {
	entry := calc.Calculation{
		ID:        "test-id",
		Flavor:    flavor,
		Operation: op,
		Operands:  operands,
		Result:    result,
	}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeHistoryPort) Query(_ context.Context, flavor string) ([]calc.Calculation, error) {
	if flavor == "" {
		return f.entries, nil
	}
	var out []calc.Calculation
	for _, e := range f.entries {
		if string(e.Flavor) == flavor {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestModule() (*CalculatorModule, *fakeStackPort, *fakeHistoryPort) {
	stackPort := &fakeStackPort{stack: stack.NewOperandStack()}
	historyPort := &fakeHistoryPort{}
	return &CalculatorModule{
		stackPort:   stackPort,
		historyPort: historyPort,
	}, stackPort, historyPort
}

func TestCalculateIndependent_Success(t *testing.T) {
	m, _, hist := newTestModule()

	resp, err := m.calculateIndependent(context.Background(), CalculateIndependentRequest{
		Operation: "pow",
		Operands:  []int64{2, 10},
	}, nil)
	require.NoError(t, err)
	require.Empty(t, resp.ErrorCode)
	require.NotNil(t, resp.Calculation)

	assert.Equal(t, int64(1024), resp.Calculation.Result)
	assert.Equal(t, calc.FlavorIndependent, resp.Calculation.Flavor)
	require.Len(t, hist.entries, 1)
}

func TestCalculateIndependent_Failures(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		operands []int64
		wantCode string
	}{
		{name: "unknown operation", op: "modulo", operands: []int64{1, 2}, wantCode: calc.CodeUnknownOperation},
		{name: "divide by zero", op: "divide", operands: []int64{5, 0}, wantCode: calc.CodeDivideByZero},
		{name: "negative factorial", op: "fact", operands: []int64{-3}, wantCode: calc.CodeNegativeFactorial},
		{name: "too few operands", op: "plus", operands: []int64{1}, wantCode: calc.CodeNotEnoughArguments},
		{name: "too many operands", op: "abs", operands: []int64{1, 2}, wantCode: calc.CodeTooManyArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, hist := newTestModule()

			resp, err := m.calculateIndependent(context.Background(), CalculateIndependentRequest{
				Operation: tt.op,
				Operands:  tt.operands,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.ErrorCode)
			assert.Nil(t, resp.Calculation)
			assert.Empty(t, hist.entries, "failed calculations must not be recorded")
		})
	}
}

func TestCalculateStack_PopsArityAndRecords(t *testing.T) {
	m, stackPort, hist := newTestModule()
	_, err := stackPort.Push(context.Background(), []int64{10, 3, 7})
	require.NoError(t, err)

	// minus pops [7 3]: most-recently-pushed first becomes the first operand.
	resp, err := m.calculateStack(context.Background(), CalculateStackRequest{Operation: "minus"}, nil)
	require.NoError(t, err)
	require.Empty(t, resp.ErrorCode)
	require.NotNil(t, resp.Calculation)

	assert.Equal(t, int64(4), resp.Calculation.Result)
	assert.Equal(t, []int64{7, 3}, resp.Calculation.Operands)
	assert.Equal(t, calc.FlavorStack, resp.Calculation.Flavor)

	size, err := stackPort.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, size)
	require.Len(t, hist.entries, 1)
}

func TestCalculateStack_UnderflowLeavesStackIntact(t *testing.T) {
	m, stackPort, hist := newTestModule()
	_, err := stackPort.Push(context.Background(), []int64{1})
	require.NoError(t, err)

	resp, err := m.calculateStack(context.Background(), CalculateStackRequest{Operation: "plus"}, nil)
	require.NoError(t, err)
	assert.Equal(t, stack.CodeStackUnderflow, resp.ErrorCode)
	assert.Nil(t, resp.Calculation)
	assert.Empty(t, hist.entries)

	// Underflow is recoverable: push one more operand and retry.
	_, err = stackPort.Push(context.Background(), []int64{2})
	require.NoError(t, err)

	resp, err = m.calculateStack(context.Background(), CalculateStackRequest{Operation: "plus"}, nil)
	require.NoError(t, err)
	require.Empty(t, resp.ErrorCode)
	assert.Equal(t, int64(3), resp.Calculation.Result)
}

func TestCalculateStack_FailedPreconditionConsumesOperands(t *testing.T) {
	m, stackPort, _ := newTestModule()
	_, err := stackPort.Push(context.Background(), []int64{0, 5})
	require.NoError(t, err)

	// divide pops [5 0]: division by zero after a successful pop.
	resp, err := m.calculateStack(context.Background(), CalculateStackRequest{Operation: "divide"}, nil)
	require.NoError(t, err)
	assert.Equal(t, calc.CodeDivideByZero, resp.ErrorCode)

	size, err := stackPort.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, size, "only the pop is atomic; popped operands are consumed")
}

func TestRequiredArguments(t *testing.T) {
	m, _, _ := newTestModule()

	resp, err := m.requiredArguments(context.Background(), RequiredArgumentsRequest{Operation: "divide"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	resp, err = m.requiredArguments(context.Background(), RequiredArgumentsRequest{Operation: "fact"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	resp, err = m.requiredArguments(context.Background(), RequiredArgumentsRequest{Operation: "nope"}, nil)
	require.NoError(t, err)
	assert.Equal(t, calc.CodeUnknownOperation, resp.ErrorCode)
}
