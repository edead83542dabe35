// Package breaker implements the failure-driven state machine that decides
// whether the catalog client may call the network at all.
//
// The breaker watches success and error events over a rolling window. A 429
// moves it into a throttled state with a retry-after delay; a sustained error
// fraction moves it into cache-only mode, during which Allow reports false and
// callers must serve cached data and surface a degraded condition instead of
// issuing requests.
package breaker
