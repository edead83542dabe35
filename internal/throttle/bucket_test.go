package throttle

import (
	"testing"
	"time"
)

func newTestBucket(capacity int, rate float64) (*Bucket, *time.Time) {
	b := NewBucket(capacity, rate)
	current := time.Unix(1700000000, 0)
	b.now = func() time.Time { return current }
	b.lastRefill = current
	return b, &current
}

func TestTryAcquireDrainsExactlyCapacity(t *testing.T) {
	b, _ := newTestBucket(5, 1)
	b.Reset()
	if !b.TryAcquire(5) {
		t.Fatal("expected full-capacity acquire to succeed")
	}
	if b.TryAcquire(1) {
		t.Fatal("expected acquire to fail with empty bucket")
	}
}

func TestRefillGrantsAfterElapsedTime(t *testing.T) {
	b, current := newTestBucket(10, 2) // 2 tokens/sec
	b.Drain()
	if b.TryAcquire(1) {
		t.Fatal("drained bucket should decline")
	}
	*current = current.Add(1 * time.Second)
	if !b.TryAcquire(2) {
		t.Fatal("expected 2 tokens after 1s at 2 tokens/sec")
	}
	if b.TryAcquire(1) {
		t.Fatal("expected no tokens left")
	}
}

func TestRefillCapsAtCapacity(t *testing.T) {
	b, current := newTestBucket(3, 100)
	b.Drain()
	*current = current.Add(time.Hour)
	if got := b.Tokens(); got != 3 {
		t.Fatalf("tokens = %v, want capped at 3", got)
	}
}

func TestResetRestoresFullCapacity(t *testing.T) {
	b, _ := newTestBucket(4, 1)
	b.Drain()
	b.Reset()
	if !b.TryAcquire(4) {
		t.Fatal("expected full capacity after reset")
	}
}

func TestNonPositiveRequestCountsAsOne(t *testing.T) {
	b, _ := newTestBucket(1, 1)
	if !b.TryAcquire(0) {
		t.Fatal("TryAcquire(0) should behave like TryAcquire(1)")
	}
	if b.TryAcquire(0) {
		t.Fatal("bucket should be empty")
	}
}
