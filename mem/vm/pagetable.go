// Package vm provides the data model of a demand-paged virtual memory: the
// page directory, the frame directory, and the index-based frame lists that
// the operating system keeps over the frame directory.
package vm

import "math"

const (
	// NoFrame marks the frame field of a page that is not present.
	NoFrame = -1

	// NoPage marks a frame that does not hold any page.
	NoPage = -1

	// IllegalAddress is returned in place of a physical address when the
	// virtual address falls outside the page table.
	IllegalAddress uint64 = math.MaxUint64
)

// A Page is an entry in the page table. It tells whether the page is loaded
// and where.
type Page struct {
	Present  bool
	Frame    int
	Modified bool

	// Referenced is reserved for second-chance replacement. It is cleared on
	// load and no policy reads it.
	Referenced bool

	// Timestamp is the logical time of the last reference. It is only
	// meaningful for present pages under LRU replacement.
	Timestamp uint32
}

// PageTable is the fixed-size page directory of a single address space.
type PageTable struct {
	entries []Page
}

// NewPageTable creates a page table with numPages absent pages.
func NewPageTable(numPages int) *PageTable {
	t := &PageTable{entries: make([]Page, numPages)}
	t.Reset()

	return t
}

// Reset marks every page as absent.
func (t *PageTable) Reset() {
	for i := range t.entries {
		t.entries[i] = Page{Frame: NoFrame}
	}
}

// Len returns the number of pages in the table.
func (t *PageTable) Len() int {
	return len(t.entries)
}

// Contains tells if the page index is inside the table.
func (t *PageTable) Contains(page uint64) bool {
	return page < uint64(len(t.entries))
}

// Entry returns the mutable entry of a page.
func (t *PageTable) Entry(page int) *Page {
	return &t.entries[page]
}

// Get returns a copy of a page entry.
func (t *PageTable) Get(page int) Page {
	return t.entries[page]
}

// Snapshot copies all the page entries.
func (t *PageTable) Snapshot() []Page {
	pages := make([]Page, len(t.entries))
	copy(pages, t.entries)

	return pages
}
