// File: pool/static_pool.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// StaticPool is the core allocator: equally-sized slots carved out of a
// caller-owned flat buffer, ownership tracked per-bit in a caller-owned
// atomic bitmap. The pool borrows both buffers for its whole lifetime and
// never resizes, relocates, or interprets slot contents.

package pool

import (
	"fmt"

	"github.com/momentics/hioload-pool/api"
)

// Handle aliases api.Handle for convenience at call sites.
type Handle = api.Handle

// StaticPool allocates fixed-size slots from externally supplied memory.
// All methods are safe for concurrent use; none of them block.
type StaticPool struct {
	tracker  usageTracker
	storage  []byte
	elemSize int
}

// Compile-time interface compliance.
var _ api.SlotAllocator = (*StaticPool)(nil)
var _ api.StatsSource = (*StaticPool)(nil)

// NewStaticPool builds a pool over storage and usage, which must be sized
// exactly StorageBytes(capacity, elemSize) and UsageWords(capacity). Both
// must outlive the pool. The usage bitmap is zeroed here; construction must
// complete before any concurrent use.
func NewStaticPool(storage []byte, usage []UsageWord, capacity, elemSize int) (*StaticPool, error) {
	if capacity <= 0 || elemSize <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: capacity and element size must be positive").
			WithContext("capacity", capacity).
			WithContext("elemSize", elemSize)
	}
	if len(storage) != StorageBytes(capacity, elemSize) {
		return nil, api.NewError(api.ErrCodeSizeMismatch, "pool: storage length does not match capacity*elemSize").
			WithContext("have", len(storage)).
			WithContext("want", StorageBytes(capacity, elemSize))
	}
	if len(usage) != UsageWords(capacity) {
		return nil, api.NewError(api.ErrCodeSizeMismatch, "pool: usage bitmap length does not match capacity").
			WithContext("have", len(usage)).
			WithContext("want", UsageWords(capacity))
	}
	p := &StaticPool{
		tracker:  usageTracker{usage: usage, capacity: capacity},
		storage:  storage,
		elemSize: elemSize,
	}
	p.tracker.reset()
	return p, nil
}

// Allocate claims a free slot and returns its handle. Returns
// api.ErrPoolExhausted when the scan finishes without a successful claim;
// under heavy contention this can be a rare false negative (see usage.go),
// and callers for whom that matters should retry.
func (p *StaticPool) Allocate() (Handle, error) {
	idx, ok := p.tracker.claim()
	if !ok {
		return api.InvalidHandle, api.ErrPoolExhausted
	}
	return Handle(idx), nil
}

// Free releases a claimed handle. Panics on an out-of-range handle or a
// double free: both mean the ownership record no longer matches reality,
// and continuing would silently corrupt unrelated slots.
func (p *StaticPool) Free(h Handle) {
	p.tracker.release(int(h))
}

// Bytes returns the elemSize-byte slot addressed by h. The slice is full
// (len == cap == elemSize) so a consumer cannot append past its slot. The
// pool does not synchronize payload visibility across goroutines; hand-off
// of slot contents needs the consumer's own happens-before edge.
func (p *StaticPool) Bytes(h Handle) []byte {
	idx := int(h)
	if idx < 0 || idx >= p.tracker.capacity {
		panic(fmt.Sprintf("pool: Bytes on out-of-range handle %d (capacity %d)", idx, p.tracker.capacity))
	}
	off := idx * p.elemSize
	return p.storage[off : off+p.elemSize : off+p.elemSize]
}

// ForEachActive visits currently allocated slots in increasing handle
// order and stops when visit returns false. Returns true iff the walk
// completed. Weakly consistent under concurrent Allocate/Free.
func (p *StaticPool) ForEachActive(visit func(Handle) bool) bool {
	return p.tracker.forEachSet(func(idx int) bool {
		return visit(Handle(idx))
	})
}

// Capacity reports the fixed slot count.
func (p *StaticPool) Capacity() int { return p.tracker.capacity }

// ElementSize reports bytes per slot.
func (p *StaticPool) ElementSize() int { return p.elemSize }

// InUse reports the best-effort live slot count.
func (p *StaticPool) InUse() int { return int(p.tracker.live.Load()) }

// Exhausted reports whether the pool looked full at the moment of the call.
func (p *StaticPool) Exhausted() bool { return p.InUse() >= p.tracker.capacity }

// Stats returns an occupancy snapshot for diagnostics.
func (p *StaticPool) Stats() api.PoolStats {
	return api.PoolStats{
		Capacity:   p.tracker.capacity,
		TotalAlloc: p.tracker.allocs.Load(),
		TotalFree:  p.tracker.frees.Load(),
		InUse:      p.tracker.live.Load(),
		HighWater:  p.tracker.high.Load(),
	}
}
