// File: pool/static_pool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

func newPool(t *testing.T, capacity, elemSize int) (*pool.StaticPool, []byte) {
	t.Helper()
	storage := make([]byte, pool.StorageBytes(capacity, elemSize))
	usage := make([]pool.UsageWord, pool.UsageWords(capacity))
	p, err := pool.NewStaticPool(storage, usage, capacity, elemSize)
	require.NoError(t, err)
	return p, storage
}

func TestStaticPoolConstructionValidation(t *testing.T) {
	storage := make([]byte, 32)
	usage := make([]pool.UsageWord, 1)

	_, err := pool.NewStaticPool(storage, usage, 0, 8)
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = pool.NewStaticPool(storage, usage, 4, 0)
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = pool.NewStaticPool(storage[:31], usage, 4, 8)
	require.ErrorIs(t, err, api.ErrSizeMismatch)

	_, err = pool.NewStaticPool(storage, nil, 4, 8)
	require.ErrorIs(t, err, api.ErrSizeMismatch)

	p, err := pool.NewStaticPool(storage, usage, 4, 8)
	require.NoError(t, err)
	require.Equal(t, 4, p.Capacity())
	require.Equal(t, 8, p.ElementSize())
	require.Equal(t, 0, p.InUse())
}

func TestStaticPoolCapacityBound(t *testing.T) {
	const capacity, elemSize = 100, 16
	p, storage := newPool(t, capacity, elemSize)

	seen := make(map[pool.Handle]bool)
	for i := 0; i < capacity; i++ {
		h, err := p.Allocate()
		require.NoError(t, err)
		require.GreaterOrEqual(t, int(h), 0)
		require.Less(t, int(h), capacity)
		require.False(t, seen[h], "handle %d issued twice", h)
		seen[h] = true

		slot := p.Bytes(h)
		require.Len(t, slot, elemSize)
		require.Same(t, &storage[int(h)*elemSize], &slot[0])
	}

	_, err := p.Allocate()
	require.ErrorIs(t, err, api.ErrPoolExhausted)
	require.True(t, p.Exhausted())
	require.Equal(t, capacity, p.InUse())
}

func TestStaticPoolRoundTrip(t *testing.T) {
	p, _ := newPool(t, 8, 4)

	var handles []pool.Handle
	for i := 0; i < 8; i++ {
		h, err := p.Allocate()
		require.NoError(t, err)
		handles = append(handles, h)
	}
	before := p.InUse()

	p.Free(handles[3])
	h, err := p.Allocate()
	require.NoError(t, err)
	require.GreaterOrEqual(t, int(h), 0)
	require.Less(t, int(h), 8)
	require.Equal(t, before, p.InUse())
}

func TestStaticPoolDoubleFreePanics(t *testing.T) {
	p, _ := newPool(t, 1, 8)

	h, err := p.Allocate()
	require.NoError(t, err)
	p.Free(h)
	require.Panics(t, func() { p.Free(h) })
}

func TestStaticPoolForeignHandlePanics(t *testing.T) {
	p, _ := newPool(t, 4, 8)

	require.Panics(t, func() { p.Free(pool.Handle(4)) })
	require.Panics(t, func() { p.Free(pool.Handle(-1)) })
	require.Panics(t, func() { p.Bytes(pool.Handle(4)) })
	require.Panics(t, func() { p.Bytes(api.InvalidHandle) })
}

func TestStaticPoolEnumerationCompleteness(t *testing.T) {
	p, _ := newPool(t, 16, 8)

	live := make(map[pool.Handle]bool)
	for i := 0; i < 16; i++ {
		h, err := p.Allocate()
		require.NoError(t, err)
		live[h] = true
	}
	// Free a few so the walk has holes to skip.
	for _, h := range []pool.Handle{1, 7, 14} {
		p.Free(h)
		delete(live, h)
	}

	var visited []pool.Handle
	completed := p.ForEachActive(func(h pool.Handle) bool {
		visited = append(visited, h)
		return true
	})
	require.True(t, completed)
	require.Len(t, visited, len(live))
	for i, h := range visited {
		require.True(t, live[h], "visited handle %d was never allocated", h)
		if i > 0 {
			require.Greater(t, h, visited[i-1], "walk must be in increasing handle order")
		}
	}
}

func TestStaticPoolEnumerationEarlyExit(t *testing.T) {
	p, _ := newPool(t, 8, 8)
	for i := 0; i < 5; i++ {
		_, err := p.Allocate()
		require.NoError(t, err)
	}

	visits := 0
	completed := p.ForEachActive(func(pool.Handle) bool {
		visits++
		return false
	})
	require.False(t, completed)
	require.Equal(t, 1, visits)
}

func TestStaticPoolEnumerationEmpty(t *testing.T) {
	p, _ := newPool(t, 8, 8)
	completed := p.ForEachActive(func(pool.Handle) bool {
		t.Fatal("no slot should be visited on an empty pool")
		return false
	})
	require.True(t, completed)
}

// Sequential scenario pinned by the allocator's word-order scan: four slots
// fill offsets 0/8/16/24, a fifth claim fails, and the freed offset is the
// one a sequential re-claim finds first.
func TestStaticPoolSequentialScenario(t *testing.T) {
	const capacity, elemSize = 4, 8
	p, storage := newPool(t, capacity, elemSize)

	offsets := make(map[int]bool)
	var handles [capacity]pool.Handle
	for i := 0; i < capacity; i++ {
		h, err := p.Allocate()
		require.NoError(t, err)
		handles[i] = h
		slot := p.Bytes(h)
		off := int(h) * elemSize
		require.Same(t, &storage[off], &slot[0])
		require.False(t, offsets[off])
		offsets[off] = true
	}
	require.Equal(t, map[int]bool{0: true, 8: true, 16: true, 24: true}, offsets)

	_, err := p.Allocate()
	require.ErrorIs(t, err, api.ErrPoolExhausted)

	// Free the slot at offset 8 and claim again: the scan runs in index
	// order, so the same slot comes back.
	p.Free(pool.Handle(1))
	h, err := p.Allocate()
	require.NoError(t, err)
	require.Equal(t, pool.Handle(1), h)
}

func TestStaticPoolDoesNotTouchSlotContents(t *testing.T) {
	p, storage := newPool(t, 4, 4)

	h, err := p.Allocate()
	require.NoError(t, err)
	copy(p.Bytes(h), []byte{0xde, 0xad, 0xbe, 0xef})
	p.Free(h)

	// Free must not scrub the payload; content lifecycle is the caller's.
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, storage[int(h)*4:int(h)*4+4])

	h2, err := p.Allocate()
	require.NoError(t, err)
	require.Equal(t, h, h2)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, p.Bytes(h2))
}

func TestStaticPoolStats(t *testing.T) {
	p, _ := newPool(t, 4, 8)

	h1, err := p.Allocate()
	require.NoError(t, err)
	h2, err := p.Allocate()
	require.NoError(t, err)
	p.Free(h1)

	st := p.Stats()
	require.Equal(t, 4, st.Capacity)
	require.Equal(t, int64(2), st.TotalAlloc)
	require.Equal(t, int64(1), st.TotalFree)
	require.Equal(t, int64(1), st.InUse)
	require.Equal(t, int64(2), st.HighWater)

	p.Free(h2)
	require.Equal(t, int64(0), p.Stats().InUse)
}

func TestStaticPoolExhaustedErrorShape(t *testing.T) {
	p, _ := newPool(t, 1, 8)
	_, err := p.Allocate()
	require.NoError(t, err)

	_, err = p.Allocate()
	require.ErrorIs(t, err, api.ErrPoolExhausted)
	require.True(t, errors.Is(err, api.ErrPoolExhausted))
}
