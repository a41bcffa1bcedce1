// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free hand-off primitives supporting the pooled consumer subsystems.
// Currently a single-producer/single-consumer ring of slot handles used to
// pass pool ownership between goroutines with a happens-before edge the
// pool itself does not provide.
package concurrency
