package throttle

import (
	"context"
	"sync"
	"time"
)

// Semaphore is a bounded counting semaphore tracking the number of in-flight
// holders for observability.
type Semaphore struct {
	slots  chan struct{}
	mu     sync.Mutex
	active int
}

// NewSemaphore creates a semaphore with the given limit. Non-positive limits
// are clamped to 1.
func NewSemaphore(limit int) *Semaphore {
	if limit <= 0 {
		limit = 1
	}
	return &Semaphore{slots: make(chan struct{}, limit)}
}

// Acquire takes a slot, waiting up to timeout. It returns false when the
// timeout elapses or the context is cancelled; callers should treat a false
// return as "try again later", not a fatal condition.
func (s *Semaphore) Acquire(ctx context.Context, timeout time.Duration) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s.slots <- struct{}{}:
		s.mu.Lock()
		s.active++
		s.mu.Unlock()
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// Release returns a slot. Releasing without a matching acquire is a no-op.
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
		s.mu.Lock()
		if s.active > 0 {
			s.active--
		}
		s.mu.Unlock()
	default:
	}
}

// Active returns the number of currently held slots.
func (s *Semaphore) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Limit returns the configured slot count.
func (s *Semaphore) Limit() int {
	return cap(s.slots)
}
