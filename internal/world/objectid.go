package world

import (
	"sync/atomic"

	"github.com/udisondev/aiongo/internal/constants"
)

// ObjectIDGenerator выдаёт object ID для players и NPC.
// Эти ID живут только пока объект в мире и не переиспользуются;
// item ID выдаёт IDFactory.
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextNpcID    atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(constants.ObjectIDPlayerStart)
	gen.nextNpcID.Store(constants.ObjectIDNpcStart)
	return gen
}

// NextPlayerID generates next unique player object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextNpcID generates next unique NPC object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextNpcID() uint32 {
	return g.nextNpcID.Add(1)
}
