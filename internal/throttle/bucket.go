package throttle

import (
	"sync"
	"time"
)

// Bucket is a token-bucket rate limiter. Tokens refill continuously at a
// fixed rate up to the configured capacity.
type Bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
}

// NewBucket creates a bucket that starts full. Capacity and rate must be
// positive; non-positive values are clamped to 1.
func NewBucket(capacity int, refillRate float64) *Bucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}
	return &Bucket{
		tokens:     float64(capacity),
		capacity:   float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// TryAcquire attempts to take n tokens. It refills first, then grants only if
// enough tokens are available. It never blocks.
func (b *Bucket) TryAcquire(n int) bool {
	if n <= 0 {
		n = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked()
	if b.tokens < float64(n) {
		return false
	}
	b.tokens -= float64(n)
	return true
}

// Reset restores the bucket to full capacity.
func (b *Bucket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = b.capacity
	b.lastRefill = b.now()
}

// Drain empties the bucket. The client calls this after a 429 so subsequent
// requests wait for a refill instead of bursting straight back into the
// service.
func (b *Bucket) Drain() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = 0
	b.lastRefill = b.now()
}

// Tokens returns the current token count after applying any pending refill.
func (b *Bucket) Tokens() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refillLocked()
	return b.tokens
}

func (b *Bucket) refillLocked() {
	now := b.now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}
