package parser

import (
	"math/rand"
	"sync"

	"github.com/roach88/segment/internal/rules"
)

// Picker selects an index in [0, n) from a response pool of size n.
// The default picker is backed by a seeded *rand.Rand; tests install
// a constant picker to pin responses.
type Picker func(n int) int

// responder selects acknowledgement text from the configured pools.
// Pools are read-only after construction; the mutex only guards the
// shared rand source so a Parser stays safe for concurrent use.
type responder struct {
	pools rules.ResponsePools

	mu   sync.Mutex
	pick Picker
}

func newResponder(pools rules.ResponsePools, pick Picker) *responder {
	r := &responder{pools: pools, pick: pick}
	if r.pick == nil {
		rng := rand.New(rand.NewSource(rand.Int63()))
		r.pick = rng.Intn
	}
	return r
}

// from picks one string from a pool. An empty pool yields "", which
// only happens with a hand-built ResponsePools value.
func (r *responder) from(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	if len(pool) == 1 {
		return pool[0]
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return pool[r.pick(len(pool))]
}

func (r *responder) removal() string       { return r.from(r.pools.Removal) }
func (r *responder) andAddition() string   { return r.from(r.pools.AndAddition) }
func (r *responder) orAddition() string    { return r.from(r.pools.OrAddition) }
func (r *responder) fallback() string      { return r.pools.Fallback }
func (r *responder) alreadyExists() string { return r.pools.AlreadyExists }
func (r *responder) removalMiss() string   { return r.pools.RemovalMiss }
