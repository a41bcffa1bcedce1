// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-pool.
//
// Only one failure is recoverable: pool exhaustion. Invariant violations
// (double free, foreign handle) are not represented here at all -- they
// panic at the detection site, fail-fast, because a corrupted usage bitmap
// cannot be reasoned about after the fact.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrPoolExhausted reports that no free slot could be claimed. Callers
	// decide whether to retry, back off, or drop the request.
	ErrPoolExhausted = fmt.Errorf("pool exhausted")

	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrSizeMismatch    = fmt.Errorf("buffer size mismatch")
	ErrArenaReleased   = fmt.Errorf("arena already released")
	ErrQueueFull       = fmt.Errorf("queue full")
	ErrNotFound        = fmt.Errorf("resource not found")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeExhausted
	ErrCodeSizeMismatch
	ErrCodeReleased
	ErrCodeQueueFull
	ErrCodeNotFound
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel this error was built from, so callers can use
// errors.Is against the vars above.
func (e *Error) Unwrap() error { return e.wrapped }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
		wrapped: sentinelFor(code),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func sentinelFor(code ErrorCode) error {
	switch code {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeExhausted:
		return ErrPoolExhausted
	case ErrCodeSizeMismatch:
		return ErrSizeMismatch
	case ErrCodeReleased:
		return ErrArenaReleased
	case ErrCodeQueueFull:
		return ErrQueueFull
	case ErrCodeNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
