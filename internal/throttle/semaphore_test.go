package throttle

import (
	"context"
	"testing"
	"time"
)

func TestSemaphoreBoundsConcurrency(t *testing.T) {
	sem := NewSemaphore(2)
	ctx := context.Background()

	if !sem.Acquire(ctx, time.Second) {
		t.Fatal("first acquire should succeed")
	}
	if !sem.Acquire(ctx, time.Second) {
		t.Fatal("second acquire should succeed")
	}
	if sem.Active() != 2 {
		t.Fatalf("active = %d, want 2", sem.Active())
	}
	if sem.Acquire(ctx, 10*time.Millisecond) {
		t.Fatal("third acquire should time out")
	}

	sem.Release()
	if !sem.Acquire(ctx, time.Second) {
		t.Fatal("acquire after release should succeed")
	}
}

func TestSemaphoreAcquireHonorsCancellation(t *testing.T) {
	sem := NewSemaphore(1)
	if !sem.Acquire(context.Background(), time.Second) {
		t.Fatal("setup acquire failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sem.Acquire(ctx, time.Minute) {
		t.Fatal("acquire should fail on cancelled context")
	}
}

func TestSemaphoreReleaseWithoutAcquireIsNoop(t *testing.T) {
	sem := NewSemaphore(1)
	sem.Release()
	if sem.Active() != 0 {
		t.Fatalf("active = %d, want 0", sem.Active())
	}
	if !sem.Acquire(context.Background(), time.Second) {
		t.Fatal("acquire should still succeed")
	}
}

func TestSemaphoreBlockedAcquireWakesOnRelease(t *testing.T) {
	sem := NewSemaphore(1)
	if !sem.Acquire(context.Background(), time.Second) {
		t.Fatal("setup acquire failed")
	}

	done := make(chan bool, 1)
	go func() {
		done <- sem.Acquire(context.Background(), 5*time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	sem.Release()

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("waiter should have acquired after release")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never woke up")
	}
}
