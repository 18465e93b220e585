package tracing

import (
	"strconv"

	"github.com/sarchlab/pagingsim/datarecording"
	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/sim/hooking"
	"github.com/sarchlab/pagingsim/sim/id"
)

// Names of the tables written by a DBTracer.
const (
	TranslationTable = "translations"
	IllegalRefTable  = "illegal_refs"
	PageFaultTable   = "page_faults"
)

// Addresses are stored as hexadecimal text since SQLite integers cannot hold
// every uint64.
type translationEntry struct {
	ID     string
	System string
	Seq    int64
	Op     string
	VAddr  string
	Page   int64
	Offset int64
	Frame  int64
	PAddr  string
	Fault  bool
}

type illegalRefEntry struct {
	ID     string
	System string
	Seq    int64
	Op     string
	VAddr  string
	Page   string
}

type pageFaultEntry struct {
	ID        string
	System    string
	Seq       int64
	VAddr     string
	Page      int64
	Frame     int64
	Victim    int64
	WroteBack bool
}

type named interface {
	Name() string
}

// A DBTracer is a hook that records the references and page faults of a
// paging system into a DataRecorder. Seq is the position of the reference in
// the trace, starting from 1, and is shared by a fault and the translation
// that caused it.
type DBTracer struct {
	recorder datarecording.DataRecorder
	idGen    id.IDGenerator

	seq          int64
	pendingFault *pageFaultEntry
}

// NewDBTracer creates a DBTracer and the tables it writes.
func NewDBTracer(
	recorder datarecording.DataRecorder,
	idGen id.IDGenerator,
) *DBTracer {
	t := &DBTracer{
		recorder: recorder,
		idGen:    idGen,
	}

	t.recorder.CreateTable(TranslationTable, translationEntry{})
	t.recorder.CreateTable(IllegalRefTable, illegalRefEntry{})
	t.recorder.CreateTable(PageFaultTable, pageFaultEntry{})

	return t
}

// Func records the event.
func (t *DBTracer) Func(ctx hooking.HookCtx) {
	system := ""
	if n, ok := ctx.Domain.(named); ok {
		system = n.Name()
	}

	switch e := ctx.Item.(type) {
	case mmu.TranslateEvent:
		t.seq++
		t.recorder.InsertData(TranslationTable, translationEntry{
			ID:     t.idGen.Generate(),
			System: system,
			Seq:    t.seq,
			Op:     e.Op.String(),
			VAddr:  hex(e.VAddr),
			Page:   int64(e.Page),
			Offset: int64(e.Offset),
			Frame:  int64(e.Frame),
			PAddr:  hex(e.PAddr),
			Fault:  e.Fault,
		})
	case mmu.IllegalRefEvent:
		t.seq++
		t.recorder.InsertData(IllegalRefTable, illegalRefEntry{
			ID:     t.idGen.Generate(),
			System: system,
			Seq:    t.seq,
			Op:     e.Op.String(),
			VAddr:  hex(e.VAddr),
			Page:   strconv.FormatUint(e.Page, 10),
		})
	case mmu.PageFaultEvent:
		t.pendingFault = &pageFaultEntry{
			ID:     t.idGen.Generate(),
			System: system,
			Seq:    t.seq + 1,
			VAddr:  hex(e.VAddr),
			Page:   int64(e.Page),
			Frame:  vm.NoFrame,
			Victim: vm.NoPage,
		}
	case mmu.InstallEvent:
		t.completeFault(e.Frame, vm.NoPage, false)
	case mmu.ReplaceEvent:
		t.completeFault(e.Frame, e.Victim, e.WroteBack)
	}
}

func (t *DBTracer) completeFault(frame, victim int, wroteBack bool) {
	if t.pendingFault == nil {
		return
	}

	entry := *t.pendingFault
	entry.Frame = int64(frame)
	entry.Victim = int64(victim)
	entry.WroteBack = wroteBack

	t.recorder.InsertData(PageFaultTable, entry)
	t.pendingFault = nil
}

func hex(addr uint64) string {
	return "0x" + strconv.FormatUint(addr, 16)
}
