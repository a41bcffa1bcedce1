// File: api/stats.go
// Author: momentics <momentics@gmail.com>
//
// Occupancy diagnostics reported by pools. Counters are maintained with
// independent atomics and are best-effort: a snapshot taken under concurrent
// traffic may be momentarily inconsistent with the usage bitmap, which
// remains the sole authority for slot ownership.

package api

// PoolStats is a point-in-time occupancy snapshot of a pool.
type PoolStats struct {
	Capacity   int
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	HighWater  int64
}
