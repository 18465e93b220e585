package mmu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/pagingsim/mem/vm"
)

// ErrInvalidConfig is returned by Build when the sizing parameters cannot
// describe a paging system.
var ErrInvalidConfig = errors.New("invalid paging configuration")

// A Builder can build a paging System.
type Builder struct {
	pageSize  int
	numPages  int
	numFrames int
	policy    ReplacementPolicy
	logger    *slog.Logger
}

// MakeBuilder creates a new builder with 4 KiB pages, 64 pages, 16 frames and
// FIFO replacement.
func MakeBuilder() Builder {
	return Builder{
		pageSize:  4096,
		numPages:  64,
		numFrames: 16,
		policy:    FIFO,
	}
}

// WithPageSize sets the number of bytes in a page.
func (b Builder) WithPageSize(pageSize int) Builder {
	b.pageSize = pageSize
	return b
}

// WithNumPages sets the number of logical pages of the address space.
func (b Builder) WithNumPages(n int) Builder {
	b.numPages = n
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithPolicy sets the page replacement policy.
func (b Builder) WithPolicy(policy ReplacementPolicy) Builder {
	b.policy = policy
	return b
}

// WithLogger sets the logger that receives warnings. The default logger is
// used if not set.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build returns a newly created System in its initial state. All frames are
// free and all pages are absent.
func (b Builder) Build(name string) (*System, error) {
	err := b.validate()
	if err != nil {
		return nil, err
	}

	s := &System{
		name:     name,
		pageSize: uint64(b.pageSize),
		policy:   b.policy,
		logger:   b.logger,
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.pageTable = vm.NewPageTable(b.numPages)
	s.frameTable = vm.NewFrameTable(b.numFrames)
	s.freeList = vm.NewFrameList(s.frameTable)
	s.replacer = b.createReplacer(s)

	s.Reset()

	return s, nil
}

func (b Builder) validate() error {
	if b.pageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d",
			ErrInvalidConfig, b.pageSize)
	}

	if b.numPages <= 0 {
		return fmt.Errorf("%w: number of pages must be positive, got %d",
			ErrInvalidConfig, b.numPages)
	}

	if b.numFrames <= 0 {
		return fmt.Errorf("%w: number of frames must be positive, got %d",
			ErrInvalidConfig, b.numFrames)
	}

	if !b.policy.isValid() {
		return fmt.Errorf("%w: unknown replacement policy %d",
			ErrInvalidConfig, int(b.policy))
	}

	return nil
}

func (b Builder) createReplacer(s *System) replacer {
	switch b.policy {
	case LRU:
		return &lruReplacer{sys: s}
	default:
		return &fifoReplacer{
			sys:    s,
			ledger: vm.NewFrameList(s.frameTable),
		}
	}
}
