package vm

// A Frame is an entry of the frame table. The hardware never reads it; only
// the operating system keeps it.
type Frame struct {
	// Page is the page loaded in the frame, or NoPage.
	Page int

	// Next links the frame into whichever FrameList currently owns it.
	Next int
}

// FrameTable is the fixed-size frame directory.
type FrameTable struct {
	entries []Frame
}

// NewFrameTable creates a frame table with numFrames empty frames.
func NewFrameTable(numFrames int) *FrameTable {
	t := &FrameTable{entries: make([]Frame, numFrames)}
	t.Reset()

	return t
}

// Reset empties every frame and unlinks it.
func (t *FrameTable) Reset() {
	for i := range t.entries {
		t.entries[i] = Frame{Page: NoPage, Next: NoFrame}
	}
}

// Len returns the number of frames.
func (t *FrameTable) Len() int {
	return len(t.entries)
}

// Entry returns the mutable entry of a frame.
func (t *FrameTable) Entry(frame int) *Frame {
	return &t.entries[frame]
}

// Get returns a copy of a frame entry.
func (t *FrameTable) Get(frame int) Frame {
	return t.entries[frame]
}

// Snapshot copies all the frame entries.
func (t *FrameTable) Snapshot() []Frame {
	frames := make([]Frame, len(t.entries))
	copy(frames, t.entries)

	return frames
}
