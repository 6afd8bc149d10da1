package strategy

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for users and executions.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random UUIDv4 identifiers.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string { return uuid.New().String() }

// SequenceGenerator produces "<prefix>-1", "<prefix>-2", ... and is used
// where identifiers must be predictable.
type SequenceGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewSequenceGenerator creates a sequence generator with the given prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID() string {
	return g.prefix + "-" + strconv.FormatUint(g.n.Add(1), 10)
}
