package mmu

import (
	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/sim/hooking"
)

// The hook positions of a System. The Item of the HookCtx is the event type
// named in the comment.
var (
	// HookPosTranslate is triggered after a successful translation
	// (TranslateEvent).
	HookPosTranslate = &hooking.HookPos{Name: "Translate"}

	// HookPosIllegalRef is triggered when an address is beyond the page table
	// (IllegalRefEvent).
	HookPosIllegalRef = &hooking.HookPos{Name: "IllegalRef"}

	// HookPosPageFault is triggered when a page fault starts to be serviced
	// (PageFaultEvent).
	HookPosPageFault = &hooking.HookPos{Name: "PageFault"}

	// HookPosVictim is triggered when a victim has been chosen, before it is
	// evicted (VictimEvent).
	HookPosVictim = &hooking.HookPos{Name: "Victim"}

	// HookPosInstall is triggered after a page is stored in a free frame
	// (InstallEvent).
	HookPosInstall = &hooking.HookPos{Name: "Install"}

	// HookPosWriteBack is triggered when a modified victim is written back
	// (WriteBackEvent).
	HookPosWriteBack = &hooking.HookPos{Name: "WriteBack"}

	// HookPosReplace is triggered after a victim is replaced (ReplaceEvent).
	HookPosReplace = &hooking.HookPos{Name: "Replace"}

	// HookPosClockOverflow is triggered when the LRU clock wraps around
	// (ClockOverflowEvent).
	HookPosClockOverflow = &hooking.HookPos{Name: "ClockOverflow"}
)

// TranslateEvent describes one translated reference.
type TranslateEvent struct {
	VAddr  uint64
	Op     vm.AccessOp
	Page   int
	Offset uint64
	Frame  int
	PAddr  uint64

	// Fault tells if the page had to be loaded first.
	Fault bool
}

// IllegalRefEvent describes a reference beyond the page table.
type IllegalRefEvent struct {
	VAddr uint64
	Op    vm.AccessOp
	Page  uint64
}

// PageFaultEvent describes a reference to a page that is not present.
type PageFaultEvent struct {
	VAddr uint64
	Page  int
}

// VictimEvent describes the page chosen for eviction.
type VictimEvent struct {
	Policy    ReplacementPolicy
	Page      int
	Frame     int
	Timestamp uint32
}

// InstallEvent describes a page stored in a frame taken from the free list.
type InstallEvent struct {
	Page  int
	Frame int
}

// WriteBackEvent describes a modified page written back before eviction.
type WriteBackEvent struct {
	Page  int
	Frame int
}

// ReplaceEvent describes a victim page replaced by a new one in its frame.
type ReplaceEvent struct {
	Victim    int
	Page      int
	Frame     int
	WroteBack bool
}

// ClockOverflowEvent describes the LRU clock wrapping to zero right after the
// page was referenced.
type ClockOverflowEvent struct {
	Page int
}
