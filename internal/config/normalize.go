package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeCache()
	c.normalizeLimits()
	c.normalizeBreaker()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		c.TMDB.APIKey = strings.TrimSpace(os.Getenv("TMDB_API_KEY"))
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.SearchTTLSeconds <= 0 {
		c.Cache.SearchTTLSeconds = defaultSearchTTLSeconds
	}
	if c.Cache.DetailTTLSeconds <= 0 {
		c.Cache.DetailTTLSeconds = defaultDetailTTLSeconds
	}
}

func (c *Config) normalizeLimits() {
	if c.Limits.RequestsPerSecond <= 0 {
		c.Limits.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.Limits.Burst <= 0 {
		c.Limits.Burst = defaultBurst
	}
	if c.Limits.Concurrency <= 0 {
		c.Limits.Concurrency = defaultConcurrency
	}
	if c.Limits.RetryAttempts <= 0 {
		c.Limits.RetryAttempts = defaultRetryAttempts
	}
	if c.Limits.RetryBaseDelaySeconds <= 0 {
		c.Limits.RetryBaseDelaySeconds = defaultRetryBaseDelay
	}
}

func (c *Config) normalizeBreaker() {
	if c.Breaker.ErrorThreshold <= 0 {
		c.Breaker.ErrorThreshold = defaultErrorThreshold
	}
	if c.Breaker.WindowSeconds <= 0 {
		c.Breaker.WindowSeconds = defaultWindowSeconds
	}
	if c.Breaker.MinSamples <= 0 {
		c.Breaker.MinSamples = defaultMinSamples
	}
	if c.Breaker.MaxRetryAfterSeconds <= 0 {
		c.Breaker.MaxRetryAfterSeconds = defaultMaxRetryAfter
	}
	if c.Breaker.BackoffBaseSeconds <= 0 {
		c.Breaker.BackoffBaseSeconds = defaultBackoffBase
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
