// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the allocation contracts: fixed-capacity slot allocators handing
// out opaque handles, and typed pools layered on the same usage protocol.

package api

// Handle is an opaque slot index issued by an allocator. A handle is valid
// from the Allocate/Claim call that produced it until it is passed back to
// Free/Release; using it outside that window is an invariant violation.
type Handle int

// InvalidHandle is returned alongside an error and never addresses a slot.
const InvalidHandle Handle = -1

// SlotAllocator hands out fixed-size storage slots from a pre-sized arena.
// All methods are safe for concurrent use and never block.
type SlotAllocator interface {
	// Allocate claims a free slot and returns its handle.
	// Returns ErrPoolExhausted when no slot could be claimed.
	Allocate() (Handle, error)

	// Free releases a previously allocated handle. Freeing a handle that is
	// out of range or not currently allocated panics: the usage bitmap is
	// the sole ownership record and continuing past a detected corruption
	// would damage unrelated slots.
	Free(h Handle)

	// Bytes returns the slot's backing storage, exactly ElementSize bytes.
	// The slice stays valid until the handle is freed.
	Bytes(h Handle) []byte

	// ForEachActive visits every currently allocated slot in increasing
	// handle order. The walk stops when visit returns false; the return
	// value is true iff the walk completed without early exit.
	//
	// The walk is weakly consistent: slots allocated or freed concurrently
	// may or may not be observed.
	ForEachActive(visit func(Handle) bool) bool

	// Capacity reports the fixed slot count.
	Capacity() int

	// ElementSize reports bytes per slot.
	ElementSize() int

	// InUse reports the best-effort count of live slots. Diagnostic only.
	InUse() int
}

// TypedPool pools values of a concrete type in a fixed backing array.
type TypedPool[T any] interface {
	// Claim reserves a slot; ErrPoolExhausted when full.
	Claim() (Handle, error)

	// Get returns the pooled value for a claimed handle.
	Get(h Handle) *T

	// Release returns a claimed slot to the pool. Same fatality rules as
	// SlotAllocator.Free.
	Release(h Handle)

	// Live reports whether h addresses a currently claimed entry. A
	// snapshot: only meaningful when the caller serializes claim/release
	// traffic around it.
	Live(h Handle) bool

	// ForEachActive visits live entries in handle order with early exit.
	ForEachActive(visit func(Handle, *T) bool) bool

	Capacity() int
	InUse() int
}

// StatsSource is implemented by pools that expose occupancy diagnostics.
type StatsSource interface {
	Stats() PoolStats
}
