// Package config loads, normalizes, and validates reelmatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY. The Config type centralizes every knob the matcher and CLI
// need: catalog credentials, cache TTLs, rate/concurrency limits, circuit
// breaker thresholds, and scoring thresholds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
