// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the public contracts of hioload-pool: handle-based
// slot allocation over caller-owned storage, typed object pooling, pool
// diagnostics, and the shared error vocabulary.
//
// Implementations live in the pool package; consumers (timer lists, session
// tables, event queues) depend only on these interfaces.
package api
