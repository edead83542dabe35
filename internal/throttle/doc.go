// Package throttle provides the outbound request gates shared by the catalog
// client: a token-bucket rate limiter and a bounded concurrency semaphore.
//
// Both gates are mutex-guarded and safe for concurrent use. The bucket is
// non-blocking; callers that need to wait poll TryAcquire with a short sleep.
// The semaphore supports timeouts and context cancellation so callers never
// block indefinitely.
package throttle
