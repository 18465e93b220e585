package mmu

import (
	"fmt"

	"github.com/sarchlab/pagingsim/mem/vm"
)

// Name returns the name given at build time.
func (s *System) Name() string {
	return s.name
}

// PageSize returns the number of bytes in a page.
func (s *System) PageSize() uint64 {
	return s.pageSize
}

// NumPages returns the number of logical pages.
func (s *System) NumPages() int {
	return s.pageTable.Len()
}

// NumFrames returns the number of physical frames.
func (s *System) NumFrames() int {
	return s.frameTable.Len()
}

// Policy returns the replacement policy.
func (s *System) Policy() ReplacementPolicy {
	return s.policy
}

// Stats returns a copy of the counters.
func (s *System) Stats() Statistics {
	return s.stats
}

// Page returns the page table entry of a page.
func (s *System) Page(page int) vm.Page {
	return s.pageTable.Get(page)
}

// Frame returns the frame table entry of a frame.
func (s *System) Frame(frame int) vm.Frame {
	return s.frameTable.Get(frame)
}

// Pages returns a copy of the page table.
func (s *System) Pages() []vm.Page {
	return s.pageTable.Snapshot()
}

// Frames returns a copy of the frame table.
func (s *System) Frames() []vm.Frame {
	return s.frameTable.Snapshot()
}

// FreeFrames returns the free frames in the order they will be handed out.
func (s *System) FreeFrames() []int {
	return s.freeList.Frames()
}

// LoadOrder returns the occupied frames from the oldest load to the newest.
// The first frame holds the next FIFO victim. It is nil under LRU.
func (s *System) LoadOrder() []int {
	return s.replacer.loadOrder()
}

// Clock returns the current value of the LRU logical clock. It is always zero
// under FIFO.
func (s *System) Clock() uint32 {
	return s.replacer.clock()
}

// ResidentPages returns the present pages in ascending order.
func (s *System) ResidentPages() []int {
	var pages []int

	for i := 0; i < s.pageTable.Len(); i++ {
		if s.pageTable.Get(i).Present {
			pages = append(pages, i)
		}
	}

	return pages
}

// CheckConsistency verifies that the page table, the frame table and the
// frame lists agree. Every frame must be either free or hold a present page
// that points back to it, and, under FIFO, be in the load order list.
func (s *System) CheckConsistency() error {
	seen := make([]bool, s.frameTable.Len())

	for _, frame := range s.freeList.Frames() {
		if seen[frame] {
			return fmt.Errorf("frame %d is linked twice in the free list", frame)
		}

		if p := s.frameTable.Get(frame).Page; p != vm.NoPage {
			return fmt.Errorf("free frame %d holds page %d", frame, p)
		}

		seen[frame] = true
	}

	occupied := 0

	for frame := 0; frame < s.frameTable.Len(); frame++ {
		p := s.frameTable.Get(frame).Page
		if p == vm.NoPage {
			continue
		}

		occupied++

		if seen[frame] {
			return fmt.Errorf("frame %d is both free and occupied", frame)
		}

		page := s.pageTable.Get(p)
		if !page.Present || page.Frame != frame {
			return fmt.Errorf("frame %d holds page %d which is not mapped to it",
				frame, p)
		}

		seen[frame] = true
	}

	for frame, ok := range seen {
		if !ok {
			return fmt.Errorf("frame %d is neither free nor occupied", frame)
		}
	}

	if len(s.ResidentPages()) != occupied {
		return fmt.Errorf("%d pages are present but %d frames are occupied",
			len(s.ResidentPages()), occupied)
	}

	if s.policy == FIFO && len(s.LoadOrder()) != occupied {
		return fmt.Errorf("load order holds %d frames but %d are occupied",
			len(s.LoadOrder()), occupied)
	}

	return nil
}
