package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDegraded reports that the circuit breaker is in cache-only mode and
	// no network request was attempted.
	ErrDegraded = errors.New("catalog degraded: serving cache only")
	// ErrValidation marks malformed input caught before any request.
	ErrValidation = errors.New("validation error")
	// ErrDomain marks a response that parsed but failed semantic validation.
	// Domain errors are never retried.
	ErrDomain = errors.New("domain error")
	// ErrBusy reports that no concurrency slot became available in time.
	// Callers should treat it as "try again later".
	ErrBusy = errors.New("catalog busy: no request slot available")
)

// RequestError reports a request that failed after exhausting all retry
// attempts.
type RequestError struct {
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("catalog request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
