// File: event/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package event provides a bounded event-record channel for one producer
// and one consumer: fixed-size records claimed from a StaticPool, payload
// copied in, and the slot handle passed over a lock-free ring. The ring's
// publish store is the happens-before edge that makes the payload visible
// to the consumer; the pool alone does not provide one.
package event
