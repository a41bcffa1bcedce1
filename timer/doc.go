// File: timer/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package timer provides a fixed-capacity one-shot timer list for
// advertisement refresh, session expiry, and similar protocol deadlines.
// Timer records live in a pool.ObjectPool and are threaded into an
// expiry-ordered intrusive list by handle; no timer ever allocates after
// the list is built. Due callbacks are staged into a FIFO and run from
// whatever goroutine drives Dispatch.
package timer
