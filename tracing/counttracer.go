package tracing

import "github.com/sarchlab/pagingsim/sim/hooking"

// EventCountTracer counts how many times each hook position is triggered.
type EventCountTracer struct {
	names  []string
	counts map[string]uint64
}

// NewEventCountTracer creates a new EventCountTracer
func NewEventCountTracer() *EventCountTracer {
	return &EventCountTracer{counts: make(map[string]uint64)}
}

// Func counts the event.
func (t *EventCountTracer) Func(ctx hooking.HookCtx) {
	name := ctx.Pos.Name

	if _, ok := t.counts[name]; !ok {
		t.names = append(t.names, name)
	}

	t.counts[name]++
}

// GetNames returns the positions seen, in the order they were first seen.
func (t *EventCountTracer) GetNames() []string {
	return t.names
}

// GetCount returns the number of events seen at a position.
func (t *EventCountTracer) GetCount(pos *hooking.HookPos) uint64 {
	return t.counts[pos.Name]
}
