// File: timer/list_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/timer"
)

func TestListFiresInDeadlineOrder(t *testing.T) {
	l, err := timer.NewList(8)
	require.NoError(t, err)

	base := time.Now()
	var fired []string
	// Armed out of order on purpose.
	_, err = l.ScheduleAt(base.Add(30*time.Millisecond), func() { fired = append(fired, "c") })
	require.NoError(t, err)
	_, err = l.ScheduleAt(base.Add(10*time.Millisecond), func() { fired = append(fired, "a") })
	require.NoError(t, err)
	_, err = l.ScheduleAt(base.Add(20*time.Millisecond), func() { fired = append(fired, "b") })
	require.NoError(t, err)

	require.Equal(t, 3, l.Armed())
	next, ok := l.NextDeadline()
	require.True(t, ok)
	require.Equal(t, base.Add(10*time.Millisecond), next)

	// Nothing due yet.
	require.Equal(t, 0, l.Advance(base))
	require.Equal(t, 0, l.Dispatch(0))

	require.Equal(t, 2, l.Advance(base.Add(25*time.Millisecond)))
	require.Equal(t, 2, l.Pending())
	require.Equal(t, 2, l.Dispatch(0))
	require.Equal(t, []string{"a", "b"}, fired)

	require.Equal(t, 1, l.Advance(base.Add(time.Second)))
	require.Equal(t, 1, l.Dispatch(0))
	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Equal(t, 0, l.Armed())

	_, ok = l.NextDeadline()
	require.False(t, ok)
}

func TestListDispatchLimit(t *testing.T) {
	l, err := timer.NewList(4)
	require.NoError(t, err)

	base := time.Now()
	count := 0
	for i := 0; i < 3; i++ {
		_, err := l.ScheduleAt(base, func() { count++ })
		require.NoError(t, err)
	}
	require.Equal(t, 3, l.Advance(base))

	require.Equal(t, 2, l.Dispatch(2))
	require.Equal(t, 2, count)
	require.Equal(t, 1, l.Pending())
	require.Equal(t, 1, l.Dispatch(0))
	require.Equal(t, 3, count)
}

func TestListCancel(t *testing.T) {
	l, err := timer.NewList(4)
	require.NoError(t, err)

	base := time.Now()
	fired := false
	h, err := l.ScheduleAt(base.Add(time.Millisecond), func() { fired = true })
	require.NoError(t, err)

	require.True(t, l.Cancel(h))
	require.False(t, l.Cancel(h), "second cancel must find nothing")
	require.Equal(t, 0, l.Advance(base.Add(time.Second)))
	require.Equal(t, 0, l.Dispatch(0))
	require.False(t, fired)

	// The record went back to the pool.
	require.Equal(t, int64(0), l.Stats().InUse)
}

func TestListCancelMiddleOfList(t *testing.T) {
	l, err := timer.NewList(8)
	require.NoError(t, err)

	base := time.Now()
	var fired []int
	_, err = l.ScheduleAt(base.Add(1*time.Millisecond), func() { fired = append(fired, 1) })
	require.NoError(t, err)
	h2, err := l.ScheduleAt(base.Add(2*time.Millisecond), func() { fired = append(fired, 2) })
	require.NoError(t, err)
	_, err = l.ScheduleAt(base.Add(3*time.Millisecond), func() { fired = append(fired, 3) })
	require.NoError(t, err)

	require.True(t, l.Cancel(h2))
	l.Advance(base.Add(time.Second))
	l.Dispatch(0)
	require.Equal(t, []int{1, 3}, fired)
}

func TestListExhaustion(t *testing.T) {
	l, err := timer.NewList(2)
	require.NoError(t, err)

	_, err = l.Schedule(time.Hour, func() {})
	require.NoError(t, err)
	_, err = l.Schedule(time.Hour, func() {})
	require.NoError(t, err)
	_, err = l.Schedule(time.Hour, func() {})
	require.ErrorIs(t, err, api.ErrPoolExhausted)

	// After a slot frees up, arming works again.
	l.Advance(time.Now().Add(2 * time.Hour))
	_, err = l.Schedule(time.Hour, func() {})
	require.NoError(t, err)
}

func TestListRecordReuseAfterFire(t *testing.T) {
	l, err := timer.NewList(1)
	require.NoError(t, err)

	base := time.Now()
	runs := 0
	for i := 0; i < 5; i++ {
		_, err := l.ScheduleAt(base, func() { runs++ })
		require.NoError(t, err)
		require.Equal(t, 1, l.Advance(base))
		require.Equal(t, 1, l.Dispatch(0))
	}
	require.Equal(t, 5, runs)
	require.Equal(t, int64(5), l.Stats().TotalAlloc)
	require.Equal(t, int64(5), l.Stats().TotalFree)
}
