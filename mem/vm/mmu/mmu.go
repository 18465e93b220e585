// Package mmu simulates the memory management unit and the paging part of the
// operating system of a demand-paged machine. It translates virtual addresses,
// services page faults, and evicts pages with a FIFO or LRU policy.
//
// A System is not safe for concurrent use. Independent Systems share no state.
package mmu

import (
	"log/slog"

	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/sim/hooking"
)

// System is the whole state of one simulated address space: the page table,
// the frame table, the free frame list, the replacement bookkeeping and the
// statistics counters.
type System struct {
	hooking.HookableBase

	name     string
	pageSize uint64
	policy   ReplacementPolicy
	logger   *slog.Logger

	pageTable  *vm.PageTable
	frameTable *vm.FrameTable
	freeList   *vm.FrameList
	replacer   replacer

	stats Statistics
}

// Reset brings the system back to its initial state. Every page is absent,
// every frame is free, the clock and all the counters are zero.
func (s *System) Reset() {
	s.pageTable.Reset()
	s.frameTable.Reset()
	s.freeList.ChainAll()
	s.replacer.reset()
	s.stats = Statistics{}
}

// Translate simulates the MMU hardware on one memory reference. It returns
// the physical address, or vm.IllegalAddress if the virtual address is beyond
// the page table. A missing page is loaded before the address is computed.
func (s *System) Translate(vAddr uint64, op vm.AccessOp) uint64 {
	page := vAddr / s.pageSize
	offset := vAddr % s.pageSize

	if !s.pageTable.Contains(page) {
		s.stats.IllegalRefs++
		s.invokeHook(HookPosIllegalRef, IllegalRefEvent{
			VAddr: vAddr,
			Op:    op,
			Page:  page,
		})

		return vm.IllegalAddress
	}

	pageIndex := int(page)
	fault := !s.pageTable.Get(pageIndex).Present

	if fault {
		s.handlePageFault(vAddr)
	}

	frame := s.pageTable.Get(pageIndex).Frame
	pAddr := uint64(frame)*s.pageSize + offset

	s.recordReference(pageIndex, op)

	s.invokeHook(HookPosTranslate, TranslateEvent{
		VAddr:  vAddr,
		Op:     op,
		Page:   pageIndex,
		Offset: offset,
		Frame:  frame,
		PAddr:  pAddr,
		Fault:  fault,
	})

	return pAddr
}

func (s *System) recordReference(page int, op vm.AccessOp) {
	if op.IsWrite() {
		s.stats.Writes++
		s.pageTable.Entry(page).Modified = true
	} else {
		s.stats.Reads++
	}

	s.replacer.referenced(page)
}

// handlePageFault simulates the operating system servicing a page fault. It
// takes a free frame if there is one, or evicts a victim otherwise.
func (s *System) handlePageFault(vAddr uint64) {
	s.stats.PageFaults++

	page := int(vAddr / s.pageSize)
	s.invokeHook(HookPosPageFault, PageFaultEvent{VAddr: vAddr, Page: page})

	frame, ok := s.freeList.PopHead()
	if ok {
		s.occupyFreeFrame(frame, page)
		return
	}

	victim := s.replacer.findVictim()
	victimEntry := s.pageTable.Get(victim)
	s.invokeHook(HookPosVictim, VictimEvent{
		Policy:    s.policy,
		Page:      victim,
		Frame:     victimEntry.Frame,
		Timestamp: victimEntry.Timestamp,
	})

	s.replacePage(victim, page)
}

func (s *System) occupyFreeFrame(frame, page int) {
	s.load(page, frame)
	s.replacer.occupied(frame)

	s.invokeHook(HookPosInstall, InstallEvent{Page: page, Frame: frame})
}

func (s *System) replacePage(victim, newPage int) {
	victimEntry := s.pageTable.Entry(victim)
	frame := victimEntry.Frame
	wroteBack := victimEntry.Modified

	if wroteBack {
		s.stats.WriteBacks++
		s.invokeHook(HookPosWriteBack, WriteBackEvent{Page: victim, Frame: frame})
	}

	*victimEntry = vm.Page{Frame: vm.NoFrame}

	s.load(newPage, frame)
	s.replacer.replaced(frame)

	s.invokeHook(HookPosReplace, ReplaceEvent{
		Victim:    victim,
		Page:      newPage,
		Frame:     frame,
		WroteBack: wroteBack,
	})
}

// load overwrites every field of the page entry, whatever was left there.
func (s *System) load(page, frame int) {
	*s.pageTable.Entry(page) = vm.Page{
		Present: true,
		Frame:   frame,
	}

	s.frameTable.Entry(frame).Page = page
}

func (s *System) reportClockOverflow(page int) {
	s.logger.Warn("logical clock overflow, timestamps may be unreliable",
		"system", s.name,
		"page", page,
	)

	s.invokeHook(HookPosClockOverflow, ClockOverflowEvent{Page: page})
}

func (s *System) invokeHook(pos *hooking.HookPos, item interface{}) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   item,
	})
}
