// File: timer/list.go
// Package timer
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package timer

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

// record is one armed timer. Records are pooled; next threads the
// expiry-ordered intrusive list by handle.
type record struct {
	deadline time.Time
	fire     func()
	next     pool.Handle
}

// List is a fixed-capacity one-shot timer list. The list itself is guarded
// by a mutex (arming and firing are control-plane operations); the record
// storage underneath never allocates.
type List struct {
	mu       sync.Mutex
	records  *pool.ObjectPool[record]
	head     pool.Handle
	dispatch *queue.Queue
}

// NewList builds a timer list that can hold capacity armed timers.
func NewList(capacity int) (*List, error) {
	records, err := pool.NewObjectPool[record](capacity)
	if err != nil {
		return nil, err
	}
	return &List{
		records:  records,
		head:     api.InvalidHandle,
		dispatch: queue.New(),
	}, nil
}

// Schedule arms fn to fire after delay. Returns api.ErrPoolExhausted when
// all records are armed; the caller decides whether that drops the timer
// or backs off.
func (l *List) Schedule(delay time.Duration, fn func()) (pool.Handle, error) {
	return l.ScheduleAt(time.Now().Add(delay), fn)
}

// ScheduleAt arms fn to fire at deadline.
func (l *List) ScheduleAt(deadline time.Time, fn func()) (pool.Handle, error) {
	h, err := l.records.Claim()
	if err != nil {
		return api.InvalidHandle, err
	}
	rec := l.records.Get(h)
	rec.deadline = deadline
	rec.fire = fn

	l.mu.Lock()
	l.insert(h, rec)
	l.mu.Unlock()
	return h, nil
}

// insert threads h into the list keeping earliest deadline first. Ties keep
// arming order.
func (l *List) insert(h pool.Handle, rec *record) {
	if l.head == api.InvalidHandle || rec.deadline.Before(l.records.Get(l.head).deadline) {
		rec.next = l.head
		l.head = h
		return
	}
	at := l.head
	for {
		cur := l.records.Get(at)
		if cur.next == api.InvalidHandle || rec.deadline.Before(l.records.Get(cur.next).deadline) {
			rec.next = cur.next
			cur.next = h
			return
		}
		at = cur.next
	}
}

// Cancel disarms a timer. Returns false if h is not currently armed (it may
// already have fired); the record is released only when found.
func (l *List) Cancel(h pool.Handle) bool {
	l.mu.Lock()
	found := l.unlink(h)
	l.mu.Unlock()
	if found {
		l.records.Release(h)
	}
	return found
}

func (l *List) unlink(h pool.Handle) bool {
	if l.head == api.InvalidHandle {
		return false
	}
	if l.head == h {
		l.head = l.records.Get(h).next
		return true
	}
	at := l.head
	for {
		cur := l.records.Get(at)
		if cur.next == api.InvalidHandle {
			return false
		}
		if cur.next == h {
			cur.next = l.records.Get(h).next
			return true
		}
		at = cur.next
	}
}

// Advance moves every timer due at now into the dispatch FIFO and releases
// its record, returning how many came due. Callbacks do not run here; call
// Dispatch for that.
func (l *List) Advance(now time.Time) int {
	var due []pool.Handle
	l.mu.Lock()
	for l.head != api.InvalidHandle {
		rec := l.records.Get(l.head)
		if rec.deadline.After(now) {
			break
		}
		due = append(due, l.head)
		l.head = rec.next
		l.dispatch.Add(rec.fire)
	}
	l.mu.Unlock()

	for _, h := range due {
		l.records.Release(h)
	}
	return len(due)
}

// Dispatch runs up to limit staged callbacks (all of them when limit <= 0)
// outside the list lock and returns how many ran.
func (l *List) Dispatch(limit int) int {
	var fns []func()
	l.mu.Lock()
	for l.dispatch.Length() > 0 && (limit <= 0 || len(fns) < limit) {
		fns = append(fns, l.dispatch.Remove().(func()))
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// NextDeadline reports the earliest armed deadline, ok false when nothing
// is armed.
func (l *List) NextDeadline() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.head == api.InvalidHandle {
		return time.Time{}, false
	}
	return l.records.Get(l.head).deadline, true
}

// Armed reports how many timers are currently armed.
func (l *List) Armed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for at := l.head; at != api.InvalidHandle; at = l.records.Get(at).next {
		n++
	}
	return n
}

// Pending reports how many fired callbacks are staged but not dispatched.
func (l *List) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dispatch.Length()
}

// Stats exposes the record pool's occupancy snapshot.
func (l *List) Stats() api.PoolStats { return l.records.Stats() }
