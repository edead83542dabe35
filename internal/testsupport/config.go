package testsupport

import (
	"path/filepath"
	"testing"

	"reelmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.TMDB.APIKey = "test"
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAPIKey sets the catalog API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TMDB.APIKey = key
	}
}

// WithBaseURL points the catalog client at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TMDB.BaseURL = url
	}
}
