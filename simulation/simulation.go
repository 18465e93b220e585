// Package simulation drives a paging system with a stream of memory
// references and lets observers look at the system while it runs.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sarchlab/pagingsim/mem/trace"
	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/monitoring"
)

// A Source provides memory references one at a time. It returns io.EOF when
// there are no more references.
type Source interface {
	Next() (trace.Access, error)
}

// A Simulation owns a paging system and serializes every access to it.
type Simulation struct {
	lock sync.Mutex

	id          string
	system      *mmu.System
	progressBar *monitoring.ProgressBar
	logger      *slog.Logger
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Step translates a single access and returns the physical address.
func (s *Simulation) Step(a trace.Access) uint64 {
	s.lock.Lock()
	pAddr := s.system.Translate(a.VAddr, a.Op)
	s.lock.Unlock()

	if s.progressBar != nil {
		s.progressBar.IncrementFinished(1)
	}

	return pAddr
}

// Run translates every access of the source in order. It stops at the end of
// the source, at the first read error, or when the context is done. It
// returns the number of accesses translated.
func (s *Simulation) Run(ctx context.Context, src Source) (uint64, error) {
	var count uint64

	s.logger.Debug("simulation started", "id", s.id, "system", s.system.Name())

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("simulation interrupted", "id", s.id, "accesses", count)
			return count, err
		}

		a, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return count, fmt.Errorf("reading access %d: %w", count+1, err)
		}

		if s.Step(a) == vm.IllegalAddress {
			s.logger.Debug("illegal reference", "id", s.id, "access", a.String())
		}

		count++
	}

	s.logger.Debug("simulation finished", "id", s.id, "accesses", count)

	return count, nil
}

// Inspect calls f with the system while no access is being translated. The
// system must not be retained or modified by f.
func (s *Simulation) Inspect(f func(sys *mmu.System)) {
	s.lock.Lock()
	defer s.lock.Unlock()

	f(s.system)
}

// Reset brings the system back to its initial state.
func (s *Simulation) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.system.Reset()
}
