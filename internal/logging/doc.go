// Package logging assembles the structured slog loggers used across the
// matching core.
//
// It owns the console/JSON handler plumbing, centralizes level parsing and
// output routing, and exposes attr helpers plus standardized field names so
// every component emits log lines with the same shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
