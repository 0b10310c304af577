// Package pool is a bounded, last-in-first-out free list
// for recycling storage between short-lived owners.
package pool

import (
	"fmt"
	"sync"
)

type (
	// A Pool holds at most Cap released values.
	// Acquire and Release are safe for concurrent use.
	// The zero value is a Pool that never retains anything.
	Pool[T any] struct {
		mu    sync.Mutex
		stack []T
		stats Stats
	}
	// Stats counts pool traffic since construction.
	Stats struct {
		// Reused counts acquisitions served from the pool.
		Reused uint64
		// Missed counts acquisitions that found the pool empty.
		Missed uint64
		// Retained counts releases that were kept.
		Retained uint64
		// Discarded counts releases dropped because the pool was full.
		Discarded uint64
		// Len is the number of values held when the snapshot was taken.
		Len int
	}
	constError string
)

const (
	// ErrInvalidCapacity may be returned from [New].
	ErrInvalidCapacity = constError("invalid capacity")
	// MinimumCapacity defines the lowest value supported by [New].
	MinimumCapacity = 0
)

func (errStr constError) Error() string { return string(errStr) }

// New creates a [Pool] retaining up to capacity values.
// A capacity of 0 creates a pool that discards every release.
func New[T any](capacity int) (*Pool[T], error) {
	if capacity < MinimumCapacity {
		return nil, fmt.Errorf(
			"%w: must be >=%d but %d was requested",
			ErrInvalidCapacity, MinimumCapacity, capacity)
	}
	return &Pool[T]{stack: make([]T, 0, capacity)}, nil
}

// Acquire pops the most recently released value.
// If the pool is empty, it returns the zero value and false.
func (p *Pool[T]) Acquire() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var (
		zero T
		top  = len(p.stack) - 1
	)
	if top < 0 {
		p.stats.Missed++
		return zero, false
	}
	value := p.stack[top]
	p.stack[top] = zero // Don't keep the value reachable from the free region.
	p.stack = p.stack[:top]
	p.stats.Reused++
	return value, true
}

// Release pushes value onto the pool if there is room,
// and reports whether it was retained.
func (p *Pool[T]) Release(value T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.stack) == cap(p.stack) {
		p.stats.Discarded++
		return false
	}
	p.stack = append(p.stack, value)
	p.stats.Retained++
	return true
}

// Len returns the number of values currently held.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stack)
}

// Cap returns the maximum number of values the pool will hold.
func (p *Pool[T]) Cap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cap(p.stack)
}

// Snapshot returns a copy of the pool's counters.
func (p *Pool[T]) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	stats := p.stats
	stats.Len = len(p.stack)
	return stats
}
