// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration and occupancy introspection layer for hioload-pool.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with reload listener dispatch
//   - Pool occupancy collection from registered stats sources
//   - Named debug probes for state export
//
// Diagnostics only: nothing here participates in the allocation fast path.
package control
