// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity, no-heap slot pooling for hioload-pool.
// Implements a bit-tracked, lock-free allocator over caller-owned flat
// storage and an atomic usage bitmap, a typed object pool on the same usage
// protocol, and slab/mmap arenas that own the backing memory for callers
// that do not hand-author their buffers.
//
// Nothing in this package locks, blocks, or allocates after construction.
// See static_pool.go and usage.go for the claim/release protocol details.
package pool
