package toast

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out ids for notifications created without one.
type IDGenerator interface {
	NextID() ID
}

// Counter is a monotonic IDGenerator producing "1", "2", ...
// Each store owns its own counter, so separate stores (and separate tests)
// never share numbering.
type Counter struct {
	n atomic.Uint64
}

// NewCounter creates a counter whose first id is "1".
func NewCounter() *Counter {
	return &Counter{}
}

// NextID returns the next id. IDs are never reused.
func (c *Counter) NextID() ID {
	return ID(strconv.FormatUint(c.n.Add(1), 10))
}

// UUIDGenerator produces random v4 UUIDs, for stores whose ids must not be
// guessable by clients of the feed.
type UUIDGenerator struct{}

// NextID returns a new random id.
func (UUIDGenerator) NextID() ID {
	return ID(uuid.NewString())
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() ID

// NextID calls f.
func (f IDGeneratorFunc) NextID() ID {
	return f()
}
