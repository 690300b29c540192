package rehype

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator supplies element ids for injected interactive controls.
// Implementations must be safe for concurrent use.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator returns random version 4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SequenceGenerator returns prefix-1, prefix-2, ...
type SequenceGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.Prefix + "-" + strconv.Itoa(g.n)
}
