// Package tmdb provides the raw HTTP client for The Movie Database API.
//
// It performs single search and detail calls with no retry, caching, or
// throttling; those concerns belong to the catalog client that wraps it.
// Non-2xx responses surface as *StatusError so callers can distinguish rate
// limiting (with the parsed Retry-After header) from server failures.
// Unknown response fields are ignored, never errors.
package tmdb
