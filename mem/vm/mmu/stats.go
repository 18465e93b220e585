package mmu

// Statistics are the counters of a System.
type Statistics struct {
	Reads       uint64 `json:"reads"`
	Writes      uint64 `json:"writes"`
	PageFaults  uint64 `json:"page_faults"`
	WriteBacks  uint64 `json:"write_backs"`
	IllegalRefs uint64 `json:"illegal_refs"`
}

// References returns the number of legal references.
func (s Statistics) References() uint64 {
	return s.Reads + s.Writes
}

// FaultRate returns the fraction of legal references that faulted.
func (s Statistics) FaultRate() float64 {
	refs := s.References()
	if refs == 0 {
		return 0
	}

	return float64(s.PageFaults) / float64(refs)
}
