package breaker

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"reelmatch/internal/logging"
)

// State identifies the breaker's current operating mode.
type State string

const (
	// StateNormal allows requests without restriction.
	StateNormal State = "normal"
	// StateThrottle delays requests until the retry-after period has passed.
	StateThrottle State = "throttle"
	// StateCacheOnly blocks all requests; callers must serve cached data.
	StateCacheOnly State = "cache_only"
	// StateSleepThenResume is a manually forced cool-down that clears on the
	// next observed success.
	StateSleepThenResume State = "sleep_then_resume"
)

// Options configures breaker thresholds.
type Options struct {
	ErrorThreshold float64       // error fraction that trips cache-only mode
	Window         time.Duration // rolling window for error-rate evaluation
	MinSamples     int           // minimum events before the threshold applies
	MaxRetryAfter  time.Duration // cap on honored Retry-After values
	BackoffBase    time.Duration // starting backoff when no Retry-After given
}

func (o Options) withDefaults() Options {
	if o.ErrorThreshold <= 0 {
		o.ErrorThreshold = 0.60
	}
	if o.Window <= 0 {
		o.Window = 5 * time.Minute
	}
	if o.MinSamples <= 0 {
		o.MinSamples = 10
	}
	if o.MaxRetryAfter <= 0 {
		o.MaxRetryAfter = 5 * time.Minute
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = time.Second
	}
	return o
}

// Breaker tracks request outcomes and gates outbound calls.
type Breaker struct {
	opts   Options
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	errTimes   []time.Time
	okTimes    []time.Time
	last429    time.Time
	retryDelay time.Duration
	now        func() time.Time
}

// New creates a breaker in the normal state.
func New(opts Options, logger *slog.Logger) *Breaker {
	return &Breaker{
		opts:   opts.withDefaults(),
		logger: logging.NewComponentLogger(logger, "breaker"),
		state:  StateNormal,
		now:    time.Now,
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Allow reports whether a request may proceed. It is false only in cache-only
// mode; throttled callers are expected to sleep RetryDelay first instead.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state != StateCacheOnly
}

// RetryDelay returns the remaining wait while throttled, else zero.
func (b *Breaker) RetryDelay() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateThrottle {
		return 0
	}
	remaining := b.retryDelay - b.now().Sub(b.last429)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RecordSuccess feeds a successful request into the state machine.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.okTimes = append(b.okTimes, now)
	b.pruneLocked(now)

	switch b.state {
	case StateThrottle:
		if now.Sub(b.last429) >= b.retryDelay {
			b.transitionLocked(StateNormal)
			b.retryDelay = 0
		}
	case StateSleepThenResume:
		b.transitionLocked(StateNormal)
	case StateCacheOnly:
		// Cache-only clears only when the error fraction recovers.
		if !b.overThresholdLocked() {
			b.transitionLocked(StateNormal)
		}
	}
}

// RecordError feeds a failed request into the state machine. Status is the
// HTTP status code (429 and 5xx count toward the error window; zero means a
// transport failure, which also counts). For 429 responses, retryAfter is the
// parsed Retry-After value when present, else zero.
func (b *Breaker) RecordError(status int, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.errTimes = append(b.errTimes, now)
	b.pruneLocked(now)

	if status == http.StatusTooManyRequests {
		b.last429 = now
		switch {
		case retryAfter > 0 && retryAfter <= b.opts.MaxRetryAfter:
			b.retryDelay = retryAfter
		case b.retryDelay <= 0:
			b.retryDelay = b.opts.BackoffBase
		default:
			b.retryDelay *= 2
			if b.retryDelay > b.opts.MaxRetryAfter {
				b.retryDelay = b.opts.MaxRetryAfter
			}
		}
		if b.state == StateNormal {
			b.transitionLocked(StateThrottle)
		}
	}

	if b.overThresholdLocked() {
		b.transitionLocked(StateCacheOnly)
	}
}

// ForceSleep manually enters the cool-down state; the next success restores
// normal operation.
func (b *Breaker) ForceSleep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionLocked(StateSleepThenResume)
}

// Reset clears all history and restores the normal state.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateNormal
	b.errTimes = nil
	b.okTimes = nil
	b.last429 = time.Time{}
	b.retryDelay = 0
}

// Snapshot reports window counts for observability.
func (b *Breaker) Snapshot() (state State, errorCount, successCount int, retryDelay time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked(b.now())
	return b.state, len(b.errTimes), len(b.okTimes), b.retryDelay
}

func (b *Breaker) overThresholdLocked() bool {
	total := len(b.errTimes) + len(b.okTimes)
	if total < b.opts.MinSamples {
		return false
	}
	fraction := float64(len(b.errTimes)) / float64(total)
	return fraction >= b.opts.ErrorThreshold
}

func (b *Breaker) pruneLocked(now time.Time) {
	cutoff := now.Add(-b.opts.Window)
	b.errTimes = pruneBefore(b.errTimes, cutoff)
	b.okTimes = pruneBefore(b.okTimes, cutoff)
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(times) && times[idx].Before(cutoff) {
		idx++
	}
	if idx == 0 {
		return times
	}
	return append(times[:0], times[idx:]...)
}

func (b *Breaker) transitionLocked(next State) {
	if b.state == next {
		return
	}
	prev := b.state
	b.state = next
	b.logger.Info("breaker state change",
		logging.String("from", string(prev)),
		logging.String("to", string(next)),
		logging.Int("window_errors", len(b.errTimes)),
		logging.Int("window_successes", len(b.okTimes)),
		logging.Duration("retry_delay", b.retryDelay))
}
