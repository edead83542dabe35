package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"reelmatch/internal/breaker"
	"reelmatch/internal/cache"
	"reelmatch/internal/logging"
	"reelmatch/internal/throttle"
	"reelmatch/internal/tmdb"
)

// Options configures the resilient client. Zero values fall back to the
// defaults noted per field.
type Options struct {
	Bucket         *throttle.Bucket    // default: 35 tokens at 35/sec
	Semaphore      *throttle.Semaphore // default: 4 slots
	Breaker        *breaker.Breaker    // default: breaker.Options zero config
	Cache          *cache.Store        // optional; nil disables caching
	SearchTTL      time.Duration       // default: 1 hour
	DetailTTL      time.Duration       // default: 24 hours
	RetryAttempts  int                 // default: 3
	RetryBaseDelay time.Duration       // default: 1 second
	MaxRetryAfter  time.Duration       // default: 5 minutes
	AcquireTimeout time.Duration       // default: 30 seconds
	PollInterval   time.Duration       // default: 25 milliseconds
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Bucket == nil {
		o.Bucket = throttle.NewBucket(35, 35)
	}
	if o.Semaphore == nil {
		o.Semaphore = throttle.NewSemaphore(4)
	}
	if o.Breaker == nil {
		o.Breaker = breaker.New(breaker.Options{}, o.Logger)
	}
	if o.SearchTTL <= 0 {
		o.SearchTTL = time.Hour
	}
	if o.DetailTTL <= 0 {
		o.DetailTTL = 24 * time.Hour
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = 3
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = time.Second
	}
	if o.MaxRetryAfter <= 0 {
		o.MaxRetryAfter = 5 * time.Minute
	}
	if o.AcquireTimeout <= 0 {
		o.AcquireTimeout = 30 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 25 * time.Millisecond
	}
	return o
}

// Client is the resilient catalog client shared by all concurrent matches.
type Client struct {
	raw    tmdb.Searcher
	opts   Options
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a resilient client around the raw searcher.
func New(raw tmdb.Searcher, opts Options) (*Client, error) {
	if raw == nil {
		return nil, errors.New("catalog requires a raw searcher")
	}
	opts = opts.withDefaults()
	return &Client{
		raw:    raw,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "catalog"),
		sleep:  sleepContext,
	}, nil
}

// Breaker exposes the underlying state machine for observability.
func (c *Client) Breaker() *breaker.Breaker {
	return c.opts.Breaker
}

// SearchMovie performs a cache-first movie search, retrying with shortened
// title variants when the primary title yields nothing.
func (c *Client) SearchMovie(ctx context.Context, title string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	return c.searchWithVariants(ctx, "movie", title, opts, c.raw.SearchMovie)
}

// SearchTV performs a cache-first series search, retrying with shortened
// title variants when the primary title yields nothing.
func (c *Client) SearchTV(ctx context.Context, title string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	return c.searchWithVariants(ctx, "tv", title, opts, c.raw.SearchTV)
}

// GetDetails performs a cache-first detail lookup by id and kind.
func (c *Client) GetDetails(ctx context.Context, id int64, kind string) (*tmdb.Result, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: non-positive catalog id %d", ErrDomain, id)
	}

	key := fmt.Sprintf("detail|%s|%d", kind, id)
	if data, ok := c.cacheGet(ctx, key, cache.CategoryDetail); ok {
		var cached tmdb.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var (
		result *tmdb.Result
		err    error
	)
	callErr := c.doCall(ctx, func(callCtx context.Context) error {
		switch kind {
		case "tv":
			result, err = c.raw.GetTVDetails(callCtx, id)
		default:
			result, err = c.raw.GetMovieDetails(callCtx, id)
		}
		return err
	})
	if callErr != nil {
		return nil, callErr
	}

	c.cacheSet(ctx, key, cache.CategoryDetail, c.opts.DetailTTL, result)
	return result, nil
}

type searchFunc func(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error)

func (c *Client) searchWithVariants(ctx context.Context, kind, title string, opts tmdb.SearchOptions, search searchFunc) (*tmdb.Response, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty search title", ErrValidation)
	}

	var lastErr error
	for _, variant := range TitleVariants(title) {
		resp, err := c.searchOne(ctx, kind, variant, opts, search)
		if err != nil {
			lastErr = err
			// Degraded mode will fail every variant the same way.
			if errors.Is(err, ErrDegraded) {
				return nil, err
			}
			continue
		}
		if len(resp.Results) > 0 {
			if variant != title {
				c.logger.Debug("search succeeded with title variant",
					logging.String("variant", variant))
			}
			return resp, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return &tmdb.Response{}, nil
}

func (c *Client) searchOne(ctx context.Context, kind, title string, opts tmdb.SearchOptions, search searchFunc) (*tmdb.Response, error) {
	key := fmt.Sprintf("search|%s|%s|%s", kind, strings.ToLower(title), opts.CacheKey())
	if data, ok := c.cacheGet(ctx, key, cache.CategorySearch); ok {
		var cached tmdb.Response
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var (
		resp *tmdb.Response
		err  error
	)
	callErr := c.doCall(ctx, func(callCtx context.Context) error {
		resp, err = search(callCtx, title, opts)
		return err
	})
	if callErr != nil {
		return nil, callErr
	}

	c.cacheSet(ctx, key, cache.CategorySearch, c.opts.SearchTTL, resp)
	return resp, nil
}

// doCall runs one logical request through every gate: breaker pre-check,
// semaphore slot, token-bucket poll, then the call itself with retries.
func (c *Client) doCall(ctx context.Context, call func(ctx context.Context) error) error {
	br := c.opts.Breaker

	if !br.Allow() {
		c.markDegraded(true)
		return ErrDegraded
	}
	c.markDegraded(false)

	if delay := br.RetryDelay(); delay > 0 {
		c.logger.Debug("throttled; waiting before request",
			logging.Duration("delay", delay))
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}

	if !c.opts.Semaphore.Acquire(ctx, c.opts.AcquireTimeout) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
	defer c.opts.Semaphore.Release()

	if err := c.waitForToken(ctx); err != nil {
		return err
	}

	backoff := c.opts.RetryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.opts.RetryAttempts; attempt++ {
		err := call(ctx)
		if err == nil {
			br.RecordSuccess()
			return nil
		}
		lastErr = err

		var statusErr *tmdb.StatusError
		switch {
		case errors.As(err, &statusErr) && statusErr.Code == http.StatusTooManyRequests:
			br.RecordError(statusErr.Code, statusErr.RetryAfter)
			c.opts.Bucket.Drain()
			wait := statusErr.RetryAfter
			if wait <= 0 || wait > c.opts.MaxRetryAfter {
				wait = backoff
			}
			backoff *= 2
			c.logger.Warn("rate limited by catalog",
				logging.Int("attempt", attempt),
				logging.Duration("wait", wait),
				logging.String(logging.FieldErrorHint, "reduce request volume or raise limits.requests_per_second cap"),
				logging.String(logging.FieldImpact, "matching slows down while the limiter cools off"))
			if attempt == c.opts.RetryAttempts {
				break
			}
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
		case errors.As(err, &statusErr) && statusErr.Code >= 500:
			br.RecordError(statusErr.Code, 0)
			if attempt == c.opts.RetryAttempts {
				break
			}
			if sleepErr := c.sleep(ctx, backoff); sleepErr != nil {
				return sleepErr
			}
			backoff *= 2
		case errors.As(err, &statusErr):
			// 4xx other than 429: the request itself is wrong; retrying
			// cannot help.
			br.RecordError(statusErr.Code, 0)
			return fmt.Errorf("%w: %v", ErrDomain, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			// Transport-level failure.
			br.RecordError(0, 0)
			if attempt == c.opts.RetryAttempts {
				break
			}
			if sleepErr := c.sleep(ctx, backoff); sleepErr != nil {
				return sleepErr
			}
			backoff *= 2
		}
	}

	return &RequestError{Attempts: c.opts.RetryAttempts, Err: lastErr}
}

// waitForToken polls the bucket until a token is granted or the context ends.
func (c *Client) waitForToken(ctx context.Context) error {
	for {
		if c.opts.Bucket.TryAcquire(1) {
			return nil
		}
		if err := c.sleep(ctx, c.opts.PollInterval); err != nil {
			return err
		}
	}
}

func (c *Client) cacheGet(ctx context.Context, key, category string) ([]byte, bool) {
	if c.opts.Cache == nil {
		return nil, false
	}
	return c.opts.Cache.Get(ctx, key, category)
}

func (c *Client) cacheSet(ctx context.Context, key, category string, ttl time.Duration, value any) {
	if c.opts.Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("marshal cache payload", logging.Error(err))
		return
	}
	if err := c.opts.Cache.Set(ctx, key, data, category, ttl); err != nil {
		c.logger.Warn("cache write failed",
			logging.Error(err),
			logging.String(logging.FieldCacheType, category))
	}
}

func (c *Client) markDegraded(degraded bool) {
	if c.opts.Cache != nil {
		c.opts.Cache.SetDegraded(degraded)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
