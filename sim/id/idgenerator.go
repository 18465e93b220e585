// Package id generates identifiers for recorded simulation events.
package id

import (
	"strconv"

	"github.com/rs/xid"
)

// IDGenerator generates unique string IDs.
type IDGenerator interface {
	Generate() string
}

// NewIDGenerator returns a generator of increasing decimal IDs, starting
// from 1.
func NewIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewRunIDGenerator returns a generator of IDs that are unique across runs.
// Every ID is prefixed with the same random run ID.
func NewRunIDGenerator() IDGenerator {
	return &runIDGenerator{runID: xid.New().String()}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	g.nextID++
	return strconv.FormatUint(g.nextID, 10)
}

type runIDGenerator struct {
	runID string
	seq   sequentialIDGenerator
}

func (g *runIDGenerator) Generate() string {
	return g.runID + "-" + g.seq.Generate()
}
