// Package objpool provides a small pooled-allocation helper for the
// simulators' hot paths. The teacher package this is adapted from
// (go-ublk's internal/queue) pools byte buffers in a few fixed sizes to
// avoid allocating on every I/O; SCHED has the analogous hot path with
// *sched.Event values instead of buffers (spec.md §4.2 schedules a fresh
// event on nearly every transition), so this collapses the size-bucketed
// sync.Pool down to one generic, type-safe bucket.
package objpool

import "sync"

// Pool recycles pointers to T, avoiding an allocation on every Get once
// the pool is warm. The zero value is not usable; construct with New.
type Pool[T any] struct {
	pool sync.Pool
}

// New creates a Pool that allocates a fresh *T via new(T) when empty.
func New[T any]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{New: func() any { return new(T) }},
	}
}

// Get returns a *T, zeroed so callers never observe a stale value left
// by a previous user.
func (p *Pool[T]) Get() *T {
	v := p.pool.Get().(*T)
	var zero T
	*v = zero
	return v
}

// Put returns v to the pool for reuse.
func (p *Pool[T]) Put(v *T) {
	p.pool.Put(v)
}
