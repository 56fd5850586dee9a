package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CalculationRecordedEvent is emitted when a completed calculation is
// appended to the history log.
type CalculationRecordedEvent struct {
	ID         string    `json:"id"`
	Flavor     string    `json:"flavor"`
	Operation  string    `json:"operation"`
	Operands   []int64   `json:"operands"`
	Result     int64     `json:"result"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CalculationRecordedV1 is the typed event definition for recorded calculations.
// Subject: events.history.v1.calculation-recorded
var CalculationRecordedV1 = helper.EventDefinition[CalculationRecordedEvent](
	"history", "CalculationRecorded", "v1",
)

// OperandsPushedEvent is emitted when operands are pushed onto the shared
// operand stack.
type OperandsPushedEvent struct {
	Operands []int64   `json:"operands"`
	Size     int       `json:"size"`
	PushedAt time.Time `json:"pushed_at"`
}

// OperandsPushedV1 is the typed event definition for stack pushes.
// Subject: events.stack.v1.operands-pushed
var OperandsPushedV1 = helper.EventDefinition[OperandsPushedEvent](
	"stack", "OperandsPushed", "v1",
)
