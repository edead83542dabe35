package testsupport

import (
	"testing"
	"time"

	"reelmatch/internal/cache"
)

// MustOpenStore opens a cache.Store in a fresh temp directory and registers
// cleanup.
func MustOpenStore(t testing.TB, defaultTTL time.Duration) *cache.Store {
	t.Helper()

	store, err := cache.Open(t.TempDir(), defaultTTL, nil)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
