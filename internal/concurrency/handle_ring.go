// File: internal/concurrency/handle_ring.go
// Package concurrency implements lock-free ring buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// HandleRing is a bounded circular buffer of slot handles with atomic
// head/tail, padded to prevent false sharing. Safe for one producer and one
// consumer; the tail store publishes the handle (and, transitively, the
// producer's writes into the slot it addresses) to the consumer.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/hioload-pool/api"
)

// HandleRing is a lock-free SPSC ring of pool handles.
type HandleRing struct {
	data []api.Handle
	mask uint64
	head atomic.Uint64
	_    [64]byte // Padding for hot/cold separation
	tail atomic.Uint64
	_    [64]byte // Padding to separate tail from other data
}

// NewHandleRing allocates a ring of power-of-two size.
func NewHandleRing(size uint64) *HandleRing {
	if size == 0 || size&(size-1) != 0 {
		panic("size must be power of two")
	}
	return &HandleRing{
		data: make([]api.Handle, size),
		mask: size - 1,
	}
}

// Enqueue adds a handle; returns false if full.
func (r *HandleRing) Enqueue(h api.Handle) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail-head >= uint64(len(r.data)) {
		return false
	}
	r.data[tail&r.mask] = h
	r.tail.Store(tail + 1)
	return true
}

// Dequeue removes and returns a handle; ok false if empty.
func (r *HandleRing) Dequeue() (api.Handle, bool) {
	head := r.head.Load()
	tail := r.tail.Load()
	if head >= tail {
		return api.InvalidHandle, false
	}
	h := r.data[head&r.mask]
	r.head.Store(head + 1)
	return h, true
}

// Len returns the number of handles currently in the ring.
func (r *HandleRing) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(tail - head)
}

// Cap returns the fixed ring capacity.
func (r *HandleRing) Cap() int {
	return len(r.data)
}
