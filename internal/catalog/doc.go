// Package catalog wraps the raw TMDB client with the resilience layers the
// matching engine depends on: circuit breaker pre-checks, bounded in-flight
// concurrency, token-bucket throttling, cache-first reads, retry with
// exponential backoff, and title-variant fallback searches.
//
// The package is the only layer allowed to raise a hard error to the engine,
// and only after exhausting retries; everything else degrades locally.
package catalog
