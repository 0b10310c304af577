package indirection

import "github.com/djdv/go-indirection/internal/pool"

type (
	// Pools recycles cache storage between sessions.
	// A single Pools is typically created at startup and
	// shared by every cache; it is safe for concurrent use.
	// Constructed by [NewPools].
	Pools struct {
		linear *pool.Pool[*linearBundle]
		hash   *pool.Pool[*hashBundle]
	}
	// PoolStats counts the traffic of one of the pools.
	PoolStats = pool.Stats
	// Stats holds a snapshot of both pools.
	Stats struct {
		Linear, Hash PoolStats
	}
)

const (
	// DefaultPoolCapacity is a few times the number of sessions
	// expected to be in flight at once.
	DefaultPoolCapacity = 30
	// MinimumPoolCapacity defines the lowest value supported by [NewPools].
	// A zero capacity disables recycling.
	MinimumPoolCapacity = pool.MinimumCapacity
	// ErrInvalidCapacity may be returned from [NewPools].
	ErrInvalidCapacity = pool.ErrInvalidCapacity
)

// NewPools creates a pair of pools, one per cache strategy,
// each retaining at most capacity bundles.
func NewPools(capacity int) (*Pools, error) {
	linear, err := pool.New[*linearBundle](capacity)
	if err != nil {
		return nil, err
	}
	hash, err := pool.New[*hashBundle](capacity)
	if err != nil {
		return nil, err
	}
	return &Pools{
		linear: linear,
		hash:   hash,
	}, nil
}

// Stats returns the current counters of both pools.
func (p *Pools) Stats() Stats {
	return Stats{
		Linear: p.linear.Snapshot(),
		Hash:   p.hash.Snapshot(),
	}
}
