package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how many accesses of a trace have been translated.
// Total is zero when the length of the trace is not known in advance.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished adds a certain amount to the finished accesses.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// SetTotal updates the number of accesses expected.
func (b *ProgressBar) SetTotal(total uint64) {
	b.Lock()
	defer b.Unlock()

	b.Total = total
}

// Done tells if every expected access is finished.
func (b *ProgressBar) Done() bool {
	b.Lock()
	defer b.Unlock()

	return b.Total > 0 && b.Finished >= b.Total
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

func (b *ProgressBar) snapshot() progressRsp {
	b.Lock()
	defer b.Unlock()

	return progressRsp{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
	}
}
