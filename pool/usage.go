// File: pool/usage.go
// Package pool implements lock-free slot tracking over atomic bit words.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"sync/atomic"
)

// UsageWord is one atomic bit-group of the usage bitmap. Callers size the
// bitmap with UsageWords and may declare it statically; the pool borrows it
// for its whole lifetime.
type UsageWord = atomic.Uint64

// wordBits is the width of one usage word. Word w covers slots
// [w*wordBits, w*wordBits+wordBits), truncated at capacity for the last word.
const wordBits = 64

// UsageWords returns the bitmap length required for capacity slots.
func UsageWords(capacity int) int {
	return (capacity + wordBits - 1) / wordBits
}

// StorageBytes returns the storage length required for capacity slots of
// elemSize bytes each.
func StorageBytes(capacity, elemSize int) int {
	return capacity * elemSize
}

// usageTracker is the shared claim/release protocol behind StaticPool and
// ObjectPool. Bit i set means slot i is owned by some consumer; the bitmap
// is the sole source of truth. Counters are diagnostics only.
type usageTracker struct {
	usage    []UsageWord
	capacity int

	live   atomic.Int64
	allocs atomic.Int64
	frees  atomic.Int64
	high   atomic.Int64
}

// reset zeroes the bitmap. Runs before any concurrent access is possible,
// so plain stores would do; atomic stores cost nothing here.
func (t *usageTracker) reset() {
	for i := range t.usage {
		t.usage[i].Store(0)
	}
}

// claim finds and atomically sets a clear bit, returning its slot index.
// Scans words in index order; within a word, a lost CAS refreshes the
// snapshot and resumes at the next offset. Earlier offsets are not
// revisited in the same pass, so under adversarial interleavings claim can
// miss a bit that was freed behind the scan and report failure despite a
// free slot existing. Lock-free, not wait-free.
func (t *usageTracker) claim() (int, bool) {
	for word := 0; word*wordBits < t.capacity; word++ {
		u := &t.usage[word]
		value := u.Load()
		for off := 0; off < wordBits && word*wordBits+off < t.capacity; off++ {
			bit := uint64(1) << uint(off)
			if value&bit != 0 {
				continue
			}
			if u.CompareAndSwap(value, value|bit) {
				t.noteClaim()
				return word*wordBits + off, true
			}
			value = u.Load() // lost the race, refresh and keep scanning forward
		}
	}
	return 0, false
}

// release clears a set bit. Out-of-range index or an already-clear bit is a
// corruption of the ownership record; both panic rather than return.
func (t *usageTracker) release(idx int) {
	if idx < 0 || idx >= t.capacity {
		panic(fmt.Sprintf("pool: release of out-of-range slot %d (capacity %d)", idx, t.capacity))
	}
	word, off := idx/wordBits, idx%wordBits
	bit := uint64(1) << uint(off)
	var prev uint64
	for {
		prev = t.usage[word].Load()
		if t.usage[word].CompareAndSwap(prev, prev&^bit) {
			break
		}
	}
	if prev&bit == 0 {
		panic(fmt.Sprintf("pool: double free of slot %d", idx))
	}
	t.noteRelease()
}

// isSet reports whether slot idx is currently claimed.
func (t *usageTracker) isSet(idx int) bool {
	if idx < 0 || idx >= t.capacity {
		return false
	}
	return t.usage[idx/wordBits].Load()&(uint64(1)<<uint(idx%wordBits)) != 0
}

// forEachSet visits set bits in increasing index order, stopping when visit
// returns false. Returns true iff the walk completed. Each word is read
// once per visit pass: the walk observes some interleaving of concurrent
// claims and releases, not a snapshot.
func (t *usageTracker) forEachSet(visit func(idx int) bool) bool {
	for word := 0; word*wordBits < t.capacity; word++ {
		value := t.usage[word].Load()
		for off := 0; off < wordBits && word*wordBits+off < t.capacity; off++ {
			if value&(uint64(1)<<uint(off)) == 0 {
				continue
			}
			if !visit(word*wordBits + off) {
				return false
			}
		}
	}
	return true
}

func (t *usageTracker) noteClaim() {
	t.allocs.Add(1)
	live := t.live.Add(1)
	for {
		hw := t.high.Load()
		if live <= hw || t.high.CompareAndSwap(hw, live) {
			return
		}
	}
}

func (t *usageTracker) noteRelease() {
	t.frees.Add(1)
	t.live.Add(-1)
}
