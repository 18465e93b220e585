package vm

import (
	"errors"
	"fmt"
)

// ErrUnknownAccessOp is returned when an access kind cannot be parsed.
var ErrUnknownAccessOp = errors.New("unknown access operation")

// AccessOp is the kind of a memory reference.
type AccessOp byte

// Supported access kinds.
const (
	AccessRead  AccessOp = 'R'
	AccessWrite AccessOp = 'W'
)

// IsWrite tells if the access modifies the page.
func (op AccessOp) IsWrite() bool {
	return op == AccessWrite
}

func (op AccessOp) String() string {
	switch op {
	case AccessRead:
		return "R"
	case AccessWrite:
		return "W"
	default:
		return fmt.Sprintf("AccessOp(%d)", byte(op))
	}
}

// ParseAccessOp converts the one-letter notation of traces (R, r, W, w) into
// an AccessOp.
func ParseAccessOp(s string) (AccessOp, error) {
	switch s {
	case "R", "r":
		return AccessRead, nil
	case "W", "w":
		return AccessWrite, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccessOp, s)
	}
}
