//go:build !linux
// +build !linux

// File: pool/arena_stub.go
// Author: momentics <momentics@gmail.com>
//
// Heap fallback for platforms without the mapped-storage path.

package pool

// mapStorage falls back to a heap buffer; there is nothing to unmap and
// page locking is not available, so the flag is ignored.
func mapStorage(n int, _ bool) ([]byte, func([]byte) error, error) {
	return make([]byte, n), nil, nil
}
