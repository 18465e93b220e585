package mmu

import "github.com/sarchlab/pagingsim/mem/vm"

// fifoReplacer keeps the occupied frames in a circular list in load order. The
// tail of the list is the newest frame and its successor the oldest.
type fifoReplacer struct {
	sys    *System
	ledger *vm.FrameList
}

func (r *fifoReplacer) reset() {
	r.ledger.Clear()
}

func (r *fifoReplacer) findVictim() int {
	frame := r.ledger.Head()
	return r.sys.frameTable.Get(frame).Page
}

func (r *fifoReplacer) occupied(frame int) {
	r.ledger.PushTail(frame)
}

// The replaced frame is the head of the list. Moving the tail onto it retires
// it as the oldest and readmits it as the newest at the same time.
func (r *fifoReplacer) replaced(frame int) {
	if r.ledger.Head() != frame {
		panic("replaced frame is not the oldest one")
	}

	r.ledger.Rotate()
}

func (r *fifoReplacer) referenced(int) {}

func (r *fifoReplacer) loadOrder() []int {
	return r.ledger.Frames()
}

func (r *fifoReplacer) clock() uint32 {
	return 0
}
