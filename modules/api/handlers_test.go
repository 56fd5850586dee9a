package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/example/calc-service/domain/calc"
	"github.com/example/calc-service/modules/calculator"
	"github.com/example/calc-service/modules/feed"
	"github.com/example/calc-service/modules/history"
	"github.com/example/calc-service/modules/stack"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalculatorPort serves calculations in-process, bypassing the service
// container but reusing the real domain dispatcher and operand stack.
type fakeCalculatorPort struct {
	stack   *stack.OperandStack
	history *history.Log
}

func (f *fakeCalculatorPort) CalculateIndependent(_ context.Context, operation string, operands []int64) (*calculator.CalculateResponse, error) {
	op, err := calc.ParseOperation(operation)
	if err != nil {
		return &calculator.CalculateResponse{ErrorCode: calc.ErrorCode(err), ErrorMessage: err.Error()}, nil
	}
	result, err := calc.Calculate(op, operands)
	if err != nil {
		return &calculator.CalculateResponse{ErrorCode: calc.ErrorCode(err), ErrorMessage: err.Error()}, nil
	}
	entry := calc.Calculation{ID: "test", Flavor: calc.FlavorIndependent, Operation: op, Operands: operands, Result: result}
	f.history.Append(entry)
	return &calculator.CalculateResponse{Calculation: &entry}, nil
}

func (f *fakeCalculatorPort) CalculateStack(_ context.Context, operation string) (*calculator.CalculateResponse, error) {
	op, err := calc.ParseOperation(operation)
	if err != nil {
		return &calculator.CalculateResponse{ErrorCode: calc.ErrorCode(err), ErrorMessage: err.Error()}, nil
	}
	operands, err := f.stack.TryPopN(op.RequiredArgumentCount())
	if err != nil {
		if errors.Is(err, stack.ErrNotEnoughOperands) {
			return &calculator.CalculateResponse{ErrorCode: stack.CodeStackUnderflow, ErrorMessage: err.Error()}, nil
		}
		return nil, err
	}
	result, err := calc.Calculate(op, operands)
	if err != nil {
		return &calculator.CalculateResponse{ErrorCode: calc.ErrorCode(err), ErrorMessage: err.Error()}, nil
	}
	entry := calc.Calculation{ID: "test", Flavor: calc.FlavorStack, Operation: op, Operands: operands, Result: result}
	f.history.Append(entry)
	return &calculator.CalculateResponse{Calculation: &entry}, nil
}

func (f *fakeCalculatorPort) RequiredArguments(_ context.Context, operation string) (*calculator.RequiredArgumentsResponse, error) {
	op, err := calc.ParseOperation(operation)
	if err != nil {
		return &calculator.RequiredArgumentsResponse{ErrorCode: calc.ErrorCode(err), ErrorMessage: err.Error()}, nil
	}
	return &calculator.RequiredArgumentsResponse{Count: op.RequiredArgumentCount()}, nil
}

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

type fakeHistoryPort struct {
	log *history.Log
}

func (f *fakeHistoryPort) Record(_ context.Context, flavor calc.Flavor, op calc.Operation, operands []int64, result int64) (*calc.Calculation, error) {
	entry := calc.Calculation{ID: "test", Flavor: flavor, Operation: op, Operands: operands, Result: result}
	f.log.Append(entry)
	return &entry, nil
}

func (f *fakeHistoryPort) Query(_ context.Context, flavor string) ([]calc.Calculation, error) {
	if flavor == "" {
		return f.log.QueryAll(), nil
	}
	parsed, err := calc.ParseFlavor(flavor)
	if err != nil {
		return nil, err
	}
	return f.log.Query(parsed), nil
}

func newTestAPI() *APIModule {
	operandStack := stack.NewOperandStack()
	historyLog := history.NewLog()
	m := &APIModule{
		calcAdapter:    &fakeCalculatorPort{stack: operandStack, history: historyLog},
		stackAdapter:   &fakeStackPort{stack: operandStack},
		historyAdapter: &fakeHistoryPort{log: historyLog},
		hub:            feed.NewHub(),
		port:           "3000",
	}
	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	m.setupRoutes()
	return m
}

func doRequest(t *testing.T, m *APIModule, method, path string, body any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestAPI_IndependentCalculation(t *testing.T) {
	m := newTestAPI()

	status, body := doRequest(t, m, fiber.MethodPost, "/api/v1/calculations", CalculateRequest{
		Operation: "pow",
		Operands:  []int64{2, 10},
	})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var resp CalculationResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, int64(1024), resp.Result)
	assert.Equal(t, "independent", resp.Flavor)
}

func TestAPI_IndependentCalculationErrors(t *testing.T) {
	tests := []struct {
		name       string
		req        CalculateRequest
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown operation",
			req:        CalculateRequest{Operation: "modulo", Operands: []int64{1, 2}},
			wantStatus: fiber.StatusBadRequest,
			wantError:  calc.CodeUnknownOperation,
		},
		{
			name:       "missing operation",
			req:        CalculateRequest{Operands: []int64{1, 2}},
			wantStatus: fiber.StatusBadRequest,
			wantError:  "validation_error",
		},
		{
			name:       "divide by zero",
			req:        CalculateRequest{Operation: "divide", Operands: []int64{5, 0}},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantError:  calc.CodeDivideByZero,
		},
		{
			name:       "negative factorial",
			req:        CalculateRequest{Operation: "fact", Operands: []int64{-2}},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantError:  calc.CodeNegativeFactorial,
		},
		{
			name:       "wrong arity",
			req:        CalculateRequest{Operation: "abs", Operands: []int64{1, 2}},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantError:  calc.CodeTooManyArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestAPI()
			status, body := doRequest(t, m, fiber.MethodPost, "/api/v1/calculations", tt.req)
			assert.Equal(t, tt.wantStatus, status, string(body))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestAPI_StackFlow(t *testing.T) {
	m := newTestAPI()

	// Push [10 3 7]; top is 7.
	status, body := doRequest(t, m, fiber.MethodPost, "/api/v1/stack/operands", PushOperandsRequest{
		Operands: []int64{10, 3, 7},
	})
	require.Equal(t, fiber.StatusAccepted, status, string(body))

	var pushResp StackResponse
	require.NoError(t, json.Unmarshal(body, &pushResp))
	assert.Equal(t, 3, pushResp.Size)

	// minus pops [7 3] -> 4.
	status, body = doRequest(t, m, fiber.MethodPost, "/api/v1/stack/calculations", StackCalculateRequest{
		Operation: "minus",
	})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var calcResp CalculationResponse
	require.NoError(t, json.Unmarshal(body, &calcResp))
	assert.Equal(t, int64(4), calcResp.Result)
	assert.Equal(t, "stack", calcResp.Flavor)
	assert.Equal(t, []int64{7, 3}, calcResp.Operands)

	status, body = doRequest(t, m, fiber.MethodGet, "/api/v1/stack", nil)
	require.Equal(t, fiber.StatusOK, status)

	var sizeResp StackResponse
	require.NoError(t, json.Unmarshal(body, &sizeResp))
	assert.Equal(t, 1, sizeResp.Size)
}

func TestAPI_StackUnderflowIs409(t *testing.T) {
	m := newTestAPI()

	status, body := doRequest(t, m, fiber.MethodPost, "/api/v1/stack/calculations", StackCalculateRequest{
		Operation: "plus",
	})
	assert.Equal(t, fiber.StatusConflict, status, string(body))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, stack.CodeStackUnderflow, resp.Error)

	// Underflow must not consume anything.
	status, body = doRequest(t, m, fiber.MethodGet, "/api/v1/stack", nil)
	require.Equal(t, fiber.StatusOK, status)
	var sizeResp StackResponse
	require.NoError(t, json.Unmarshal(body, &sizeResp))
	assert.Equal(t, 0, sizeResp.Size)
}

func TestAPI_HistorySegmentation(t *testing.T) {
	m := newTestAPI()

	_, _ = doRequest(t, m, fiber.MethodPost, "/api/v1/calculations", CalculateRequest{Operation: "plus", Operands: []int64{1, 2}})
	_, _ = doRequest(t, m, fiber.MethodPost, "/api/v1/stack/operands", PushOperandsRequest{Operands: []int64{-8}})
	_, _ = doRequest(t, m, fiber.MethodPost, "/api/v1/stack/calculations", StackCalculateRequest{Operation: "abs"})

	status, body := doRequest(t, m, fiber.MethodGet, "/api/v1/history?flavor=stack", nil)
	require.Equal(t, fiber.StatusOK, status)
	var stackHist HistoryResponse
	require.NoError(t, json.Unmarshal(body, &stackHist))
	require.Equal(t, 1, stackHist.Total)
	assert.Equal(t, "abs", stackHist.Calculations[0].Operation)

	status, body = doRequest(t, m, fiber.MethodGet, "/api/v1/history?flavor=independent", nil)
	require.Equal(t, fiber.StatusOK, status)
	var indHist HistoryResponse
	require.NoError(t, json.Unmarshal(body, &indHist))
	require.Equal(t, 1, indHist.Total)
	assert.Equal(t, "plus", indHist.Calculations[0].Operation)

	status, body = doRequest(t, m, fiber.MethodGet, "/api/v1/history", nil)
	require.Equal(t, fiber.StatusOK, status)
	var allHist HistoryResponse
	require.NoError(t, json.Unmarshal(body, &allHist))
	assert.Equal(t, 2, allHist.Total)

	status, body = doRequest(t, m, fiber.MethodGet, "/api/v1/history?flavor=batch", nil)
	assert.Equal(t, fiber.StatusBadRequest, status, string(body))
}

func TestAPI_PushValidation(t *testing.T) {
	m := newTestAPI()

	status, body := doRequest(t, m, fiber.MethodPost, "/api/v1/stack/operands", PushOperandsRequest{})
	assert.Equal(t, fiber.StatusBadRequest, status, string(body))
}

func TestHealthBeforeStart(t *testing.T) {
	// The framework may poll health before Start or SetHub run.
	m := NewModule()

	status := m.Health(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "3000", status.Details["port"])
	assert.NotContains(t, status.Details, "feed_subscribers")
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{calc.CodeUnknownOperation, fiber.StatusBadRequest},
		{calc.CodeUnknownFlavor, fiber.StatusBadRequest},
		{stack.CodeStackUnderflow, fiber.StatusConflict},
		{calc.CodeNotEnoughArguments, fiber.StatusUnprocessableEntity},
		{calc.CodeTooManyArguments, fiber.StatusUnprocessableEntity},
		{calc.CodeDivideByZero, fiber.StatusUnprocessableEntity},
		{calc.CodeNegativeFactorial, fiber.StatusUnprocessableEntity},
		{"something_else", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
