//go:build linux
// +build linux

// File: pool/arena_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux arena storage from anonymous private pages. Keeps slot memory off
// the Go heap entirely, which also keeps it out of GC scanning.

package pool

import (
	"github.com/momentics/hioload-pool/api"
	"golang.org/x/sys/unix"
)

// mapStorage maps n bytes of zeroed anonymous memory, optionally pinned
// with mlock. Munmap drops the lock together with the mapping.
func mapStorage(n int, lock bool) ([]byte, func([]byte) error, error) {
	if n <= 0 {
		return nil, nil, api.NewError(api.ErrCodeInvalidArgument, "pool: mapping size must be positive").
			WithContext("bytes", n)
	}
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, api.NewError(api.ErrCodeInternal, "pool: mmap failed").
			WithContext("bytes", n).
			WithContext("errno", err.Error())
	}
	if lock {
		if err := unix.Mlock(b); err != nil {
			_ = unix.Munmap(b)
			return nil, nil, api.NewError(api.ErrCodeInternal, "pool: mlock failed").
				WithContext("bytes", n).
				WithContext("errno", err.Error())
		}
	}
	return b[:n:n], unix.Munmap, nil
}
