package history

import (
	"sync"

	"github.com/example/calc-service/domain/calc"
)

// Log is an append-only record of completed calculations, kept in two
// independent segments, one per flavor. Entries are never mutated or removed
// for the lifetime of the process. Reads return snapshot copies, so later
// appends never show up in a slice a caller already holds.
type Log struct {
	mu       sync.RWMutex
	segments map[calc.Flavor][]calc.Calculation
}

// NewLog creates an empty history log.
func NewLog() *Log {
	return &Log{
		segments: map[calc.Flavor][]calc.Calculation{
			calc.FlavorStack:       {},
			calc.FlavorIndependent: {},
		},
	}
}

// Append adds one calculation to the segment matching its flavor. Appends
// preserve insertion order within a segment and never fail.
func (l *Log) Append(c calc.Calculation) {
	// Copy the operand slice so the stored entry cannot be mutated through
	// the caller's slice afterwards.
	operands := make([]int64, len(c.Operands))
	copy(operands, c.Operands)
	c.Operands = operands

	l.mu.Lock()
	defer l.mu.Unlock()
	l.segments[c.Flavor] = append(l.segments[c.Flavor], c)
}

// Query returns a snapshot of one flavor's segment in insertion order.
func (l *Log) Query(flavor calc.Flavor) []calc.Calculation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return snapshot(l.segments[flavor])
}

// QueryAll returns a snapshot of both segments. The relative ordering
// between the two segments is unspecified; within each segment insertion
// order is preserved.
func (l *Log) QueryAll() []calc.Calculation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stacked := l.segments[calc.FlavorStack]
	independent := l.segments[calc.FlavorIndependent]
	combined := make([]calc.Calculation, 0, len(stacked)+len(independent))
	combined = append(combined, stacked...)
	combined = append(combined, independent...)
	return combined
}

// Len returns the entry count per flavor.
func (l *Log) Len(flavor calc.Flavor) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.segments[flavor])
}

func snapshot(entries []calc.Calculation) []calc.Calculation {
	out := make([]calc.Calculation, len(entries))
	copy(out, entries)
	return out
}
