// File: session/table.go
// Package session
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package session

import (
	"sync"
	"time"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

// Session is one pooled session record. Fields are plain values so a record
// costs a fixed number of bytes in the backing array.
type Session struct {
	LocalID       uint16
	PeerID        uint16
	PeerAddr      [16]byte
	EstablishedAt time.Time
	LastActivity  time.Time
}

// Table is a fixed-capacity session table. Every operation is serialized
// by one mutex: the pool below tracks slot ownership but gives no payload
// visibility across goroutines, and an unserialized sweeper racing an owner
// release would double-free a record. Handle reuse is arbitrated here, not
// in the pool.
type Table struct {
	mu       sync.Mutex
	sessions *pool.ObjectPool[Session]
	nextID   uint16
}

// NewTable builds a table that can hold capacity concurrent sessions.
func NewTable(capacity int) (*Table, error) {
	sessions, err := pool.NewObjectPool[Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Table{sessions: sessions, nextID: 1}, nil
}

// Create claims a session record, assigns an unused local id, and returns
// the record for the caller to finish populating. Returns
// api.ErrPoolExhausted when the table is full; there is no eviction.
func (t *Table) Create(peerID uint16) (*Session, pool.Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.sessions.Claim()
	if err != nil {
		return nil, api.InvalidHandle, err
	}
	id := t.unusedLocalID()
	s := t.sessions.Get(h)
	*s = Session{
		LocalID:       id,
		PeerID:        peerID,
		EstablishedAt: time.Now(),
		LastActivity:  time.Now(),
	}
	return s, h, nil
}

// unusedLocalID returns the next local id not held by a live session.
// Bounded: at most capacity ids can be live, so the walk terminates.
// Caller holds t.mu.
func (t *Table) unusedLocalID() uint16 {
	for {
		id := t.nextID
		t.nextID++
		if t.nextID == 0 {
			t.nextID = 1
		}
		if id == 0 {
			continue
		}
		if _, _, ok := t.lookup(id); !ok {
			return id
		}
	}
}

// Lookup finds the live session with the given local id.
func (t *Table) Lookup(localID uint16) (*Session, pool.Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookup(localID)
}

// lookup walks the live set. Caller holds t.mu.
func (t *Table) lookup(localID uint16) (found *Session, at pool.Handle, ok bool) {
	at = api.InvalidHandle
	t.sessions.ForEachActive(func(h pool.Handle, s *Session) bool {
		if s.LocalID == localID {
			found, at, ok = s, h, true
			return false
		}
		return true
	})
	return found, at, ok
}

// Release removes a session. Returns false when the handle is no longer
// live -- an ExpireIdle sweep may have reaped it first -- so an owner and a
// sweeper racing on the same session cannot double-free the record.
func (t *Table) Release(h pool.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.sessions.Live(h) {
		return false
	}
	t.sessions.Release(h)
	return true
}

// Touch refreshes a session's activity clock, reporting whether the id was
// live.
func (t *Table) Touch(localID uint16) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, _, ok := t.lookup(localID)
	if ok {
		s.LastActivity = time.Now()
	}
	return ok
}

// ActiveSessions visits live sessions in handle order with early exit.
// Returns true iff the walk completed. The visitor runs under the table
// lock and must not call back into the table.
func (t *Table) ActiveSessions(visit func(*Session) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions.ForEachActive(func(_ pool.Handle, s *Session) bool {
		return visit(s)
	})
}

// ExpireIdle releases every session idle since before cutoff and returns
// how many were dropped. Collection and release happen under one lock
// acquisition so no concurrent Release can slip between them.
func (t *Table) ExpireIdle(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var idle []pool.Handle
	t.sessions.ForEachActive(func(h pool.Handle, s *Session) bool {
		if s.LastActivity.Before(cutoff) {
			idle = append(idle, h)
		}
		return true
	})
	for _, h := range idle {
		t.sessions.Release(h)
	}
	return len(idle)
}

// Len reports the best-effort live session count.
func (t *Table) Len() int { return t.sessions.InUse() }

// Capacity reports the fixed session budget.
func (t *Table) Capacity() int { return t.sessions.Capacity() }

// Stats exposes the session pool's occupancy snapshot.
func (t *Table) Stats() api.PoolStats { return t.sessions.Stats() }
