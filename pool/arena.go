// File: pool/arena.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arenas own the storage and bitmap buffers for callers that do not declare
// them statically. The buffers are sized once at construction and never
// grow; on platforms with mmap support the storage can come straight from
// anonymous pages instead of the Go heap.

package pool

import (
	"github.com/momentics/hioload-pool/api"
)

// SlabArena owns a storage buffer, its usage bitmap, and the StaticPool
// built over them. Release returns mapped memory to the OS; using the pool
// after Release is undefined.
type SlabArena struct {
	pool    *StaticPool
	storage []byte
	usage   []UsageWord
	unmap   func([]byte) error
}

// NewSlabArena builds a heap-backed arena of capacity slots of elemSize
// bytes each.
func NewSlabArena(capacity, elemSize int) (*SlabArena, error) {
	storage := make([]byte, StorageBytes(capacity, elemSize))
	return newArena(storage, nil, capacity, elemSize)
}

// NewMappedArena builds an arena whose storage comes from anonymous mapped
// pages where the platform supports it (see arena_linux.go), falling back
// to the heap elsewhere. With lock set the pages are pinned with mlock so
// slot access never takes a page fault; construction fails when the lock
// cannot be granted. Platforms on the heap fallback ignore the flag. Call
// Release to return the pages.
func NewMappedArena(capacity, elemSize int, lock bool) (*SlabArena, error) {
	if capacity <= 0 || elemSize <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: capacity and element size must be positive").
			WithContext("capacity", capacity).
			WithContext("elemSize", elemSize)
	}
	storage, unmap, err := mapStorage(StorageBytes(capacity, elemSize), lock)
	if err != nil {
		return nil, err
	}
	return newArena(storage, unmap, capacity, elemSize)
}

func newArena(storage []byte, unmap func([]byte) error, capacity, elemSize int) (*SlabArena, error) {
	usage := make([]UsageWord, UsageWords(capacity))
	p, err := NewStaticPool(storage, usage, capacity, elemSize)
	if err != nil {
		if unmap != nil {
			_ = unmap(storage)
		}
		return nil, err
	}
	return &SlabArena{pool: p, storage: storage, usage: usage, unmap: unmap}, nil
}

// Pool returns the allocator carved out of this arena.
func (a *SlabArena) Pool() *StaticPool { return a.pool }

// Release returns mapped storage to the OS. Idempotent; heap-backed arenas
// release nothing and always succeed.
func (a *SlabArena) Release() error {
	if a.unmap == nil || a.storage == nil {
		a.storage = nil
		return nil
	}
	err := a.unmap(a.storage)
	a.storage = nil
	return err
}
