package simulation

import (
	"log/slog"

	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/monitoring"
	"github.com/sarchlab/pagingsim/sim/id"
)

// Builder can be used to build a simulation.
type Builder struct {
	system      *mmu.System
	progressBar *monitoring.ProgressBar
	logger      *slog.Logger
	idGenerator id.IDGenerator
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		logger: slog.Default(),
	}
}

// WithSystem sets the paging system that the simulation drives.
func (b Builder) WithSystem(sys *mmu.System) Builder {
	b.system = sys
	return b
}

// WithProgressBar sets the progress bar that counts the finished accesses.
func (b Builder) WithProgressBar(bar *monitoring.ProgressBar) Builder {
	b.progressBar = bar
	return b
}

// WithLogger sets the logger of the simulation.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithIDGenerator sets the generator used to name the run.
func (b Builder) WithIDGenerator(g id.IDGenerator) Builder {
	b.idGenerator = g
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.system == nil {
		panic("simulation requires a paging system")
	}

	if b.logger == nil {
		panic("simulation requires a logger")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	idGen := b.idGenerator
	if idGen == nil {
		idGen = id.NewRunIDGenerator()
	}

	return &Simulation{
		id:          idGen.Generate(),
		system:      b.system,
		progressBar: b.progressBar,
		logger:      b.logger,
	}
}
