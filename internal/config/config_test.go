package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidatesWithAPIKey(t *testing.T) {
	cfg := Default()
	cfg.TMDB.APIKey = "test-key"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error without api key")
	}
	if !strings.Contains(err.Error(), "tmdb.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.TMDB.APIKey != "env-key" {
		t.Fatalf("expected env fallback, got %q", cfg.TMDB.APIKey)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[tmdb]
api_key = "file-key"

[limits]
concurrency = 8

[matching]
high_threshold = 0.9
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Fatalf("api key = %q", cfg.TMDB.APIKey)
	}
	if cfg.Limits.Concurrency != 8 {
		t.Fatalf("concurrency = %d, want 8", cfg.Limits.Concurrency)
	}
	if cfg.Matching.HighThreshold != 0.9 {
		t.Fatalf("high threshold = %v, want 0.9", cfg.Matching.HighThreshold)
	}
	// Untouched sections keep defaults.
	if cfg.Breaker.WindowSeconds != defaultWindowSeconds {
		t.Fatalf("breaker window = %d, want default", cfg.Breaker.WindowSeconds)
	}
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[tmdb]
api_key = "k"

[matching]
high_threshold = 0.2
low_threshold = 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for inverted thresholds")
	}
}

func TestNormalizeClampsNonPositiveTTLs(t *testing.T) {
	cfg := Default()
	cfg.TMDB.APIKey = "k"
	cfg.Cache.SearchTTLSeconds = -5
	cfg.Cache.DetailTTLSeconds = 0
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.Cache.SearchTTLSeconds != defaultSearchTTLSeconds {
		t.Fatalf("search ttl = %d", cfg.Cache.SearchTTLSeconds)
	}
	if cfg.Cache.DetailTTLSeconds != defaultDetailTTLSeconds {
		t.Fatalf("detail ttl = %d", cfg.Cache.DetailTTLSeconds)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := expandPath("~/foo")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	if got != filepath.Join(home, "foo") {
		t.Fatalf("expandPath = %q", got)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}
