// control/registry.go
// Author: momentics <momentics@gmail.com>
//
// Occupancy collector and debug probe reflector. Pools register as stats
// sources; Collect pulls a named snapshot map for export.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-pool/api"
)

// OccupancyRegistry holds registered pools and arbitrary debug probes.
type OccupancyRegistry struct {
	mu      sync.RWMutex
	sources map[string]api.StatsSource
	probes  map[string]func() any
	updated time.Time
}

// NewOccupancyRegistry creates an empty registry.
func NewOccupancyRegistry() *OccupancyRegistry {
	return &OccupancyRegistry{
		sources: make(map[string]api.StatsSource),
		probes:  make(map[string]func() any),
	}
}

// Register adds a named stats source. Re-registering a name replaces it.
func (r *OccupancyRegistry) Register(name string, src api.StatsSource) {
	r.mu.Lock()
	r.sources[name] = src
	r.mu.Unlock()
}

// Unregister removes a named source.
func (r *OccupancyRegistry) Unregister(name string) {
	r.mu.Lock()
	delete(r.sources, name)
	r.mu.Unlock()
}

// Collect snapshots every registered source.
func (r *OccupancyRegistry) Collect() map[string]api.PoolStats {
	r.mu.Lock()
	r.updated = time.Now()
	sources := make(map[string]api.StatsSource, len(r.sources))
	for k, v := range r.sources {
		sources[k] = v
	}
	r.mu.Unlock()

	out := make(map[string]api.PoolStats, len(sources))
	for name, src := range sources {
		out[name] = src.Stats()
	}
	return out
}

// LastCollected reports when Collect last ran.
func (r *OccupancyRegistry) LastCollected() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updated
}

// RegisterProbe inserts a named debug hook.
func (r *OccupancyRegistry) RegisterProbe(name string, fn func() any) {
	r.mu.Lock()
	r.probes[name] = fn
	r.mu.Unlock()
}

// DumpState returns output of all probes.
func (r *OccupancyRegistry) DumpState() map[string]any {
	r.mu.RLock()
	probes := make(map[string]func() any, len(r.probes))
	for k, fn := range r.probes {
		probes[k] = fn
	}
	r.mu.RUnlock()

	out := make(map[string]any, len(probes))
	for k, fn := range probes {
		out[k] = fn()
	}
	return out
}
