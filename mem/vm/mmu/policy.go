package mmu

import (
	"fmt"
	"strings"
)

// ReplacementPolicy selects how a victim page is chosen when no frame is
// free.
type ReplacementPolicy int

// Supported replacement policies.
const (
	// FIFO evicts the page that was loaded the longest time ago.
	FIFO ReplacementPolicy = iota

	// LRU evicts the page that was referenced the longest time ago.
	LRU
)

func (p ReplacementPolicy) String() string {
	switch p {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	default:
		return fmt.Sprintf("ReplacementPolicy(%d)", int(p))
	}
}

func (p ReplacementPolicy) isValid() bool {
	return p == FIFO || p == LRU
}

// ParseReplacementPolicy converts a policy name, in any case, to a
// ReplacementPolicy.
func ParseReplacementPolicy(name string) (ReplacementPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	default:
		return 0, fmt.Errorf("%w: unknown replacement policy %q",
			ErrInvalidConfig, name)
	}
}

// A replacer keeps the bookkeeping that a policy needs and picks victims.
type replacer interface {
	reset()

	// findVictim is only called when the free list is empty.
	findVictim() int

	// occupied is called after a page is stored in a frame taken from the
	// free list.
	occupied(frame int)

	// replaced is called after the page in a frame is replaced by another.
	replaced(frame int)

	// referenced is called on every read or write of a present page.
	referenced(page int)

	loadOrder() []int
	clock() uint32
}
