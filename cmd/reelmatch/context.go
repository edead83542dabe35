package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"reelmatch/internal/breaker"
	"reelmatch/internal/cache"
	"reelmatch/internal/catalog"
	"reelmatch/internal/config"
	"reelmatch/internal/logging"
	"reelmatch/internal/match"
	"reelmatch/internal/throttle"
	"reelmatch/internal/tmdb"
)

// commandContext shares lazily built configuration and services between
// subcommands. Services build once on first use and the cache store is
// closed by the owning command.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// services bundles everything a matching command needs. Close releases the
// cache store and its process lock.
type services struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *cache.Store
	Engine *match.Engine
}

func (s *services) Close() error {
	if s.Store != nil {
		return s.Store.Close()
	}
	return nil
}

// buildServices wires the full pipeline: logger, cache store, catalog
// client with throttling and breaker, and the matching engine. A cache
// store that fails to open degrades to cache-less operation rather than
// failing the command.
func (c *commandContext) buildServices() (*services, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	store, err := cache.Open(cfg.Paths.CacheDir, time.Duration(cfg.Cache.SearchTTLSeconds)*time.Second, logger)
	if err != nil {
		logger.Warn("cache unavailable; continuing without persistence",
			logging.Error(err))
		store = nil
	}

	raw, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("configure catalog client: %w", err)
	}

	client, err := catalog.New(raw, catalog.Options{
		Bucket:         throttle.NewBucket(cfg.Limits.Burst, cfg.Limits.RequestsPerSecond),
		Semaphore:      throttle.NewSemaphore(cfg.Limits.Concurrency),
		Breaker:        breaker.New(breakerOptions(cfg), logger),
		Cache:          store,
		SearchTTL:      time.Duration(cfg.Cache.SearchTTLSeconds) * time.Second,
		DetailTTL:      time.Duration(cfg.Cache.DetailTTLSeconds) * time.Second,
		RetryAttempts:  cfg.Limits.RetryAttempts,
		RetryBaseDelay: time.Duration(cfg.Limits.RetryBaseDelaySeconds) * time.Second,
		MaxRetryAfter:  time.Duration(cfg.Breaker.MaxRetryAfterSeconds) * time.Second,
		Logger:         logger,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("build catalog client: %w", err)
	}

	engine := match.NewEngine(client, match.Options{
		HighThreshold: cfg.Matching.HighThreshold,
		LowThreshold:  cfg.Matching.LowThreshold,
		YearTolerance: cfg.Matching.YearTolerance,
		Concurrency:   cfg.Limits.Concurrency,
		Logger:        logger,
	})

	return &services{Config: cfg, Logger: logger, Store: store, Engine: engine}, nil
}

// openStore opens only the cache store, for cache maintenance commands.
func (c *commandContext) openStore() (*cache.Store, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.Open(cfg.Paths.CacheDir, time.Duration(cfg.Cache.SearchTTLSeconds)*time.Second, logging.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return store, cfg, nil
}

func breakerOptions(cfg *config.Config) breaker.Options {
	return breaker.Options{
		ErrorThreshold: cfg.Breaker.ErrorThreshold,
		Window:         time.Duration(cfg.Breaker.WindowSeconds) * time.Second,
		MinSamples:     cfg.Breaker.MinSamples,
		MaxRetryAfter:  time.Duration(cfg.Breaker.MaxRetryAfterSeconds) * time.Second,
		BackoffBase:    time.Duration(cfg.Breaker.BackoffBaseSeconds) * time.Second,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
