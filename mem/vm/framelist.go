package vm

// FrameList is a circular singly-linked list of frame indices threaded through
// the Next fields of a FrameTable. It only stores a pointer to its tail; the
// head is the tail's successor. An empty list has tail NoFrame.
//
// Several lists may share one FrameTable as long as no frame is linked into
// more than one of them.
type FrameList struct {
	frames *FrameTable
	tail   int
}

// NewFrameList creates an empty list over the given frame table.
func NewFrameList(frames *FrameTable) *FrameList {
	return &FrameList{frames: frames, tail: NoFrame}
}

// Clear empties the list. The links of the frames are left untouched.
func (l *FrameList) Clear() {
	l.tail = NoFrame
}

// ChainAll links every frame of the table into the list in ascending order,
// so that frame 0 is the head and the last frame is the tail.
func (l *FrameList) ChainAll() {
	n := l.frames.Len()
	if n == 0 {
		l.tail = NoFrame
		return
	}

	for i := 0; i < n-1; i++ {
		l.frames.Entry(i).Next = i + 1
	}

	l.frames.Entry(n - 1).Next = 0
	l.tail = n - 1
}

// IsEmpty tells if the list holds no frame.
func (l *FrameList) IsEmpty() bool {
	return l.tail == NoFrame
}

// Tail returns the last frame of the list, or NoFrame.
func (l *FrameList) Tail() int {
	return l.tail
}

// Head returns the first frame of the list, or NoFrame.
func (l *FrameList) Head() int {
	if l.tail == NoFrame {
		return NoFrame
	}

	return l.frames.Entry(l.tail).Next
}

// PopHead detaches the first frame of the list.
func (l *FrameList) PopHead() (frame int, ok bool) {
	if l.tail == NoFrame {
		return NoFrame, false
	}

	last := l.frames.Entry(l.tail)
	frame = last.Next

	if frame == l.tail {
		l.tail = NoFrame
	} else {
		last.Next = l.frames.Entry(frame).Next
	}

	l.frames.Entry(frame).Next = NoFrame

	return frame, true
}

// PushTail links a frame after the current tail and makes it the new tail.
func (l *FrameList) PushTail(frame int) {
	f := l.frames.Entry(frame)

	if l.tail == NoFrame {
		f.Next = frame
		l.tail = frame

		return
	}

	last := l.frames.Entry(l.tail)
	f.Next = last.Next
	last.Next = frame
	l.tail = frame
}

// Rotate moves the tail one step forward. The old head becomes the tail and
// keeps its place in the ring.
func (l *FrameList) Rotate() {
	if l.tail == NoFrame {
		return
	}

	l.tail = l.frames.Entry(l.tail).Next
}

// Frames walks the list from the head and returns the frame indices in order.
func (l *FrameList) Frames() []int {
	if l.tail == NoFrame {
		return nil
	}

	frames := make([]int, 0, l.frames.Len())
	head := l.Head()
	frame := head

	for {
		frames = append(frames, frame)
		frame = l.frames.Entry(frame).Next

		if frame == head || len(frames) > l.frames.Len() {
			break
		}
	}

	return frames
}

// Len returns the number of frames in the list.
func (l *FrameList) Len() int {
	return len(l.Frames())
}
