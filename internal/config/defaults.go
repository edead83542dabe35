package config

const (
	defaultCacheDir          = "~/.cache/reelmatch"
	defaultLogDir            = "~/.local/share/reelmatch/logs"
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBLanguage      = "en-US"
	defaultSearchTTLSeconds  = 3600
	defaultDetailTTLSeconds  = 86400
	defaultRequestsPerSecond = 35.0
	defaultBurst             = 35
	defaultConcurrency       = 4
	defaultRetryAttempts     = 3
	defaultRetryBaseDelay    = 1
	defaultErrorThreshold    = 0.60
	defaultWindowSeconds     = 300
	defaultMinSamples        = 10
	defaultMaxRetryAfter     = 300
	defaultBackoffBase       = 1
	defaultHighThreshold     = 0.8
	defaultLowThreshold      = 0.3
	defaultYearTolerance     = 1
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Cache: Cache{
			SearchTTLSeconds: defaultSearchTTLSeconds,
			DetailTTLSeconds: defaultDetailTTLSeconds,
		},
		Limits: Limits{
			RequestsPerSecond:     defaultRequestsPerSecond,
			Burst:                 defaultBurst,
			Concurrency:           defaultConcurrency,
			RetryAttempts:         defaultRetryAttempts,
			RetryBaseDelaySeconds: defaultRetryBaseDelay,
		},
		Breaker: Breaker{
			ErrorThreshold:       defaultErrorThreshold,
			WindowSeconds:        defaultWindowSeconds,
			MinSamples:           defaultMinSamples,
			MaxRetryAfterSeconds: defaultMaxRetryAfter,
			BackoffBaseSeconds:   defaultBackoffBase,
		},
		Matching: Matching{
			HighThreshold: defaultHighThreshold,
			LowThreshold:  defaultLowThreshold,
			YearTolerance: defaultYearTolerance,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
