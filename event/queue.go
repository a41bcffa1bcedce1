// File: event/queue.go
// Package event
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package event

import (
	"encoding/binary"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/internal/concurrency"
	"github.com/momentics/hioload-pool/pool"
)

// lenPrefix is the record header: payload length, little-endian.
const lenPrefix = 2

// Queue is a bounded SPSC event channel backed by pooled records.
type Queue struct {
	arena *pool.SlabArena
	pool  *pool.StaticPool
	ring  *concurrency.HandleRing
}

// NewQueue builds a queue of capacity records carrying up to maxPayload
// bytes each.
func NewQueue(capacity, maxPayload int) (*Queue, error) {
	if maxPayload <= 0 || maxPayload > 0xFFFF {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "event: max payload must fit the 16-bit length prefix").
			WithContext("maxPayload", maxPayload)
	}
	arena, err := pool.NewSlabArena(capacity, lenPrefix+maxPayload)
	if err != nil {
		return nil, err
	}
	ringSize := uint64(1)
	for ringSize < uint64(capacity) {
		ringSize <<= 1
	}
	return &Queue{
		arena: arena,
		pool:  arena.Pool(),
		ring:  concurrency.NewHandleRing(ringSize),
	}, nil
}

// Publish claims a record, copies payload in, and hands it to the consumer.
// Returns api.ErrPoolExhausted when all records are in flight and
// api.ErrSizeMismatch when payload exceeds the record size.
func (q *Queue) Publish(payload []byte) error {
	if len(payload) > q.pool.ElementSize()-lenPrefix {
		return api.NewError(api.ErrCodeSizeMismatch, "event: payload exceeds record size").
			WithContext("payload", len(payload)).
			WithContext("max", q.pool.ElementSize()-lenPrefix)
	}
	h, err := q.pool.Allocate()
	if err != nil {
		return err
	}
	slot := q.pool.Bytes(h)
	binary.LittleEndian.PutUint16(slot, uint16(len(payload)))
	copy(slot[lenPrefix:], payload)

	if !q.ring.Enqueue(h) {
		// Consumer stalled with every ring entry occupied. Return the slot
		// and report backpressure.
		q.pool.Free(h)
		return api.NewError(api.ErrCodeQueueFull, "event: ring full")
	}
	return nil
}

// Consume hands the next record's payload to fn and recycles the slot.
// The payload slice is only valid inside fn. Returns false when the queue
// was empty.
func (q *Queue) Consume(fn func(payload []byte)) bool {
	h, ok := q.ring.Dequeue()
	if !ok {
		return false
	}
	slot := q.pool.Bytes(h)
	n := int(binary.LittleEndian.Uint16(slot))
	fn(slot[lenPrefix : lenPrefix+n])
	q.pool.Free(h)
	return true
}

// Drain consumes every queued record and returns how many were handed out.
func (q *Queue) Drain(fn func(payload []byte)) int {
	n := 0
	for q.Consume(fn) {
		n++
	}
	return n
}

// Len reports how many records are queued.
func (q *Queue) Len() int { return q.ring.Len() }

// Capacity reports the record budget.
func (q *Queue) Capacity() int { return q.pool.Capacity() }

// Stats exposes the record pool's occupancy snapshot.
func (q *Queue) Stats() api.PoolStats { return q.pool.Stats() }

// Release returns the arena's storage. Call only after both sides stopped.
func (q *Queue) Release() error { return q.arena.Release() }
