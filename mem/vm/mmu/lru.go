package mmu

// lruReplacer stamps every reference with a logical clock and evicts the
// present page with the oldest stamp.
type lruReplacer struct {
	sys *System
	now uint32
}

func (r *lruReplacer) reset() {
	r.now = 0
}

// findVictim scans the pages in ascending order. Among equal timestamps the
// lowest page index wins.
func (r *lruReplacer) findVictim() int {
	victim := -1

	var oldest uint32

	for i := 0; i < r.sys.pageTable.Len(); i++ {
		page := r.sys.pageTable.Get(i)
		if !page.Present {
			continue
		}

		if victim < 0 || page.Timestamp < oldest {
			victim = i
			oldest = page.Timestamp
		}
	}

	if victim < 0 {
		panic("no present page to evict")
	}

	return victim
}

func (r *lruReplacer) occupied(int) {}

func (r *lruReplacer) replaced(int) {}

func (r *lruReplacer) referenced(page int) {
	r.sys.pageTable.Entry(page).Timestamp = r.now

	r.now++
	if r.now == 0 {
		r.sys.reportClockOverflow(page)
	}
}

func (r *lruReplacer) loadOrder() []int {
	return nil
}

func (r *lruReplacer) clock() uint32 {
	return r.now
}
