// File: session/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package session provides a fixed-capacity secure-session table. Session
// records are pooled, lookup walks the live set, and a full table refuses
// new sessions instead of evicting: on constrained targets the session
// budget is a hard configuration decision, not a cache.
package session
