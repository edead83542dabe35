// Package cache provides the durable TTL cache for catalog responses, backed
// by SQLite.
//
// Keys are normalized (lower-cased, trimmed) and addressed by their SHA-256
// hash; raw keys are never persisted or logged beyond a short debug prefix.
// Values are opaque JSON blobs tagged with a cache category. Expired rows
// read as misses and are removed by a separate purge pass. Read failures of
// any kind degrade to a miss: the cache is a performance layer, never a
// correctness dependency.
package cache
