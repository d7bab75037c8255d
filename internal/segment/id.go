package segment

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces unique condition IDs. Several conditions can be
// minted in a single parse, so generators must not collide within a
// call. Implemented by UUIDv7Generator (production) and
// SequenceGenerator (tests and golden transcripts).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator mints time-sortable UUIDv7 condition IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort
// by creation time, which keeps condition listings in insertion order
// even when IDs are used as tiebreakers.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns "prefix-000001", "prefix-000002", ... in
// order. This makes test output and golden transcripts readable and
// stable across runs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator creates a generator with the given ID prefix.
//
// Example:
//
//	gen := NewSequenceGenerator("cond")
//	gen.NewID() // "cond-000001"
//	gen.NewID() // "cond-000002"
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

// NewID returns the next sequential ID.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%06d", g.prefix, g.next)
	g.next++
	return id
}
