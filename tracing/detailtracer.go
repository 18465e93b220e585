// Package tracing provides hooks that observe a paging system and turn its
// events into human-readable traces, counters, or database records.
package tracing

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/sim/hooking"
)

// DetailTracer writes one line per paging event, describing step by step
// what the MMU and the operating system do.
type DetailTracer struct {
	w io.Writer
}

// NewDetailTracer creates a DetailTracer that writes to w.
func NewDetailTracer(w io.Writer) *DetailTracer {
	return &DetailTracer{w: w}
}

// Func writes the line of the event.
func (t *DetailTracer) Func(ctx hooking.HookCtx) {
	switch e := ctx.Item.(type) {
	case mmu.TranslateEvent:
		fmt.Fprintf(t.w, "\t %s %d==P %d(M %d)+ %d\n",
			e.Op, e.VAddr, e.Page, e.Frame, e.Offset)
	case mmu.IllegalRefEvent:
		fmt.Fprintf(t.w, "@ ILLEGAL reference %s %d (P %d out of range)\n",
			e.Op, e.VAddr, e.Page)
	case mmu.PageFaultEvent:
		fmt.Fprintf(t.w, "@ PAGE_FAULT in P %d!\n", e.Page)
	case mmu.VictimEvent:
		t.writeVictim(e)
	case mmu.WriteBackEvent:
		fmt.Fprintf(t.w, "@ Writing modified P %d back (to disc) to replace it\n",
			e.Page)
	case mmu.ReplaceEvent:
		fmt.Fprintf(t.w, "@ Replacing victim P %d with P %d in M %d\n",
			e.Victim, e.Page, e.Frame)
	case mmu.InstallEvent:
		fmt.Fprintf(t.w, "@ Storing P %d in M %d\n", e.Page, e.Frame)
	case mmu.ClockOverflowEvent:
		fmt.Fprintf(t.w,
			"WARNING: Clock overflow! Timestamp values may be unreliable.\n")
	}
}

func (t *DetailTracer) writeVictim(e mmu.VictimEvent) {
	switch e.Policy {
	case mmu.LRU:
		fmt.Fprintf(t.w,
			"@ Choosing P %d (timestamp %d) from M %d for replacement\n",
			e.Page, e.Timestamp, e.Frame)
	default:
		fmt.Fprintf(t.w,
			"@ Choosing P %d (%s - oldest) from M %d for replacement\n",
			e.Page, e.Policy, e.Frame)
	}
}
