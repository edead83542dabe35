package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelmatch/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'reelmatch config init')", defaultPath)
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set")
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Limits.RequestsPerSecond <= 0 {
		return errors.New("limits.requests_per_second must be positive")
	}
	if c.Limits.Burst <= 0 {
		return errors.New("limits.burst must be positive")
	}
	if c.Limits.Concurrency <= 0 {
		return errors.New("limits.concurrency must be positive")
	}
	if c.Limits.RetryAttempts <= 0 {
		return errors.New("limits.retry_attempts must be positive")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.ErrorThreshold <= 0 || c.Breaker.ErrorThreshold > 1 {
		return errors.New("breaker.error_threshold must be in (0, 1]")
	}
	if c.Breaker.WindowSeconds <= 0 {
		return errors.New("breaker.window_seconds must be positive")
	}
	if c.Breaker.MinSamples <= 0 {
		return errors.New("breaker.min_samples must be positive")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.HighThreshold < 0 || c.Matching.HighThreshold > 1 {
		return errors.New("matching.high_threshold must be between 0 and 1")
	}
	if c.Matching.LowThreshold < 0 || c.Matching.LowThreshold > 1 {
		return errors.New("matching.low_threshold must be between 0 and 1")
	}
	if c.Matching.LowThreshold > c.Matching.HighThreshold {
		return errors.New("matching.low_threshold must not exceed matching.high_threshold")
	}
	if c.Matching.YearTolerance < 0 {
		return errors.New("matching.year_tolerance must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
