package api

import (
	"github.com/example/calc-service/domain/calc"
	"github.com/example/calc-service/modules/stack"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	// WebSocket feed of recorded calculations and stack pushes.
	m.app.Use("/ws/feed", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws/feed", websocket.New(m.handleFeedSocket))

	api := m.app.Group("/api/v1")

	api.Post("/calculations", m.calculateIndependent)
	api.Post("/stack/calculations", m.calculateStack)
	api.Post("/stack/operands", m.pushOperands)
	api.Get("/stack", m.stackSize)
	api.Get("/history", m.queryHistory)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":           "api",
			"port":             m.port,
			"feed_subscribers": m.hub.ClientCount(),
		},
	})
}

// calculateIndependent handles POST /api/v1/calculations.
func (m *APIModule) calculateIndependent(c *fiber.Ctx) error {
	var req CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if req.Operation == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Operation is required",
		})
	}

	resp, err := m.calcAdapter.CalculateIndependent(c.UserContext(), req.Operation, req.Operands)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "calculate_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return c.Status(statusForCode(resp.ErrorCode)).JSON(ErrorResponse{
			Error:   resp.ErrorCode,
			Message: resp.ErrorMessage,
		})
	}

	return c.JSON(toCalculationResponse(resp.Calculation))
}

// calculateStack handles POST /api/v1/stack/calculations.
func (m *APIModule) calculateStack(c *fiber.Ctx) error {
	var req StackCalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if req.Operation == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Operation is required",
		})
	}

	resp, err := m.calcAdapter.CalculateStack(c.UserContext(), req.Operation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "calculate_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return c.Status(statusForCode(resp.ErrorCode)).JSON(ErrorResponse{
			Error:   resp.ErrorCode,
			Message: resp.ErrorMessage,
		})
	}

	return c.JSON(toCalculationResponse(resp.Calculation))
}

// pushOperands handles POST /api/v1/stack/operands.
func (m *APIModule) pushOperands(c *fiber.Ctx) error {
	var req PushOperandsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if len(req.Operands) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "At least one operand is required",
		})
	}

	size, err := m.stackAdapter.Push(c.UserContext(), req.Operands)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "push_failed",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(StackResponse{Size: size})
}

// stackSize handles GET /api/v1/stack. The size is advisory: it may be stale
// by the time a subsequent calculation pops.
func (m *APIModule) stackSize(c *fiber.Ctx) error {
	size, err := m.stackAdapter.Size(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "size_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(StackResponse{Size: size})
}

// queryHistory handles GET /api/v1/history. Without a flavor filter both
// segments are returned; their relative ordering is unspecified.
func (m *APIModule) queryHistory(c *fiber.Ctx) error {
	flavor := c.Query("flavor", "")
	if flavor != "" {
		if _, err := calc.ParseFlavor(flavor); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   calc.CodeUnknownFlavor,
				Message: "Flavor must be 'stack' or 'independent'",
			})
		}
	}

	entries, err := m.historyAdapter.Query(c.UserContext(), flavor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "history_failed",
			Message: err.Error(),
		})
	}

	resp := HistoryResponse{
		Calculations: make([]CalculationResponse, 0, len(entries)),
		Total:        len(entries),
	}
	for i := range entries {
		resp.Calculations = append(resp.Calculations, toCalculationResponse(&entries[i]))
	}
	return c.JSON(resp)
}

// statusForCode maps core error codes to HTTP statuses: parse failures are
// 400, stack underflow is 409 (the stack is unchanged, retry after pushing),
// calculation errors are 422.
func statusForCode(code string) int {
	switch code {
	case calc.CodeUnknownOperation, calc.CodeUnknownFlavor:
		return fiber.StatusBadRequest
	case stack.CodeStackUnderflow:
		return fiber.StatusConflict
	case calc.CodeNotEnoughArguments, calc.CodeTooManyArguments,
		calc.CodeDivideByZero, calc.CodeNegativeFactorial:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// toCalculationResponse converts a domain Calculation to its HTTP shape.
func toCalculationResponse(entry *calc.Calculation) CalculationResponse {
	return CalculationResponse{
		ID:         entry.ID,
		Flavor:     string(entry.Flavor),
		Operation:  string(entry.Operation),
		Operands:   entry.Operands,
		Result:     entry.Result,
		RecordedAt: entry.RecordedAt,
	}
}
