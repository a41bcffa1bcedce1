// File: pool/object_pool.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ObjectPool layers typed slots over the same usage-word protocol as
// StaticPool. The backing array is allocated once at construction; no
// per-object allocation happens afterwards.

package pool

import (
	"fmt"

	"github.com/momentics/hioload-pool/api"
)

// ObjectPool is a fixed-capacity pool of T values addressed by handle.
// The pool never constructs or resets values: a claimed entry holds
// whatever the previous owner left in it, and initialization is the
// consumer's responsibility.
type ObjectPool[T any] struct {
	tracker usageTracker
	entries []T
}

var _ api.TypedPool[int] = (*ObjectPool[int])(nil)
var _ api.StatsSource = (*ObjectPool[int])(nil)

// NewObjectPool builds a pool of capacity entries. This is the only point
// at which the pool touches the heap.
func NewObjectPool[T any](capacity int) (*ObjectPool[T], error) {
	if capacity <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: capacity must be positive").
			WithContext("capacity", capacity)
	}
	p := &ObjectPool[T]{
		tracker: usageTracker{usage: make([]UsageWord, UsageWords(capacity)), capacity: capacity},
		entries: make([]T, capacity),
	}
	p.tracker.reset()
	return p, nil
}

// Claim reserves an entry and returns its handle, or api.ErrPoolExhausted.
func (p *ObjectPool[T]) Claim() (Handle, error) {
	idx, ok := p.tracker.claim()
	if !ok {
		return api.InvalidHandle, api.ErrPoolExhausted
	}
	return Handle(idx), nil
}

// Get returns the entry for a claimed handle. Panics on an out-of-range
// handle; a stale in-range handle is indistinguishable from a valid one,
// which is why handles must not outlive their Release.
func (p *ObjectPool[T]) Get(h Handle) *T {
	idx := int(h)
	if idx < 0 || idx >= p.tracker.capacity {
		panic(fmt.Sprintf("pool: Get on out-of-range handle %d (capacity %d)", idx, p.tracker.capacity))
	}
	return &p.entries[idx]
}

// Release returns a claimed entry to the pool. Panics on double release or
// an out-of-range handle.
func (p *ObjectPool[T]) Release(h Handle) {
	p.tracker.release(int(h))
}

// Live reports whether h currently addresses a claimed entry. The bit can
// flip the moment this returns, so consumers arbitrating handle reuse must
// serialize their claims and releases around it themselves.
func (p *ObjectPool[T]) Live(h Handle) bool {
	return p.tracker.isSet(int(h))
}

// ReleaseAll releases every live entry. Intended for teardown paths; racing
// it against concurrent Claim calls gives no useful guarantee.
func (p *ObjectPool[T]) ReleaseAll() {
	p.tracker.forEachSet(func(idx int) bool {
		p.tracker.release(idx)
		return true
	})
}

// ForEachActive visits live entries in handle order with early exit.
// Returns true iff the walk completed. Weakly consistent.
func (p *ObjectPool[T]) ForEachActive(visit func(Handle, *T) bool) bool {
	return p.tracker.forEachSet(func(idx int) bool {
		return visit(Handle(idx), &p.entries[idx])
	})
}

// Capacity reports the fixed entry count.
func (p *ObjectPool[T]) Capacity() int { return p.tracker.capacity }

// InUse reports the best-effort live entry count.
func (p *ObjectPool[T]) InUse() int { return int(p.tracker.live.Load()) }

// Stats returns an occupancy snapshot for diagnostics.
func (p *ObjectPool[T]) Stats() api.PoolStats {
	return api.PoolStats{
		Capacity:   p.tracker.capacity,
		TotalAlloc: p.tracker.allocs.Load(),
		TotalFree:  p.tracker.frees.Load(),
		InUse:      p.tracker.live.Load(),
		HighWater:  p.tracker.high.Load(),
	}
}
