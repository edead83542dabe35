package cache

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), time.Hour, nil)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestKeyHashNormalizesCaseAndWhitespace(t *testing.T) {
	base := KeyHash("attack on titan|2013")
	variants := []string{
		"Attack on Titan|2013",
		"  attack on titan|2013  ",
		"ATTACK ON TITAN|2013",
	}
	for _, variant := range variants {
		if got := KeyHash(variant); got != base {
			t.Fatalf("KeyHash(%q) = %s, want %s", variant, got, base)
		}
	}
	if len(base) != 64 {
		t.Fatalf("hash length = %d, want 64", len(base))
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"results":[{"id":1,"title":"Test Anime"}]}`)
	if err := store.Set(ctx, "Test Anime|2013", payload, CategorySearch, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok := store.Get(ctx, "test anime|2013", CategorySearch)
	if !ok {
		t.Fatal("expected cache hit for case-insensitive key")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload = %s", got)
	}
}

func TestGetMissesAfterExpiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte(`{"v":1}`), CategorySearch, time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, ok := store.Get(ctx, "k", CategorySearch); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(1100 * time.Millisecond)
	if _, ok := store.Get(ctx, "k", CategorySearch); ok {
		t.Fatal("expected miss after expiry")
	}

	// Expired reads leave the row in place; purge removes it.
	counts, err := store.CountByCategory(ctx)
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if counts[CategorySearch] != 1 {
		t.Fatalf("expired row should survive reads, counts = %v", counts)
	}

	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
}

func TestCategoryIsolatesEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte(`{"v":1}`), CategorySearch, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, ok := store.Get(ctx, "k", CategoryDetail); ok {
		t.Fatal("detail lookup should not see a search entry")
	}
}

func TestSetRejectsSecretPayloads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payloads := []string{
		`{"api_key":"sk-abc"}`,
		`{"nested":{"Token":"t"}}`,
		`{"list":[{"password":"p"}]}`,
	}
	for _, payload := range payloads {
		err := store.Set(ctx, "k", []byte(payload), CategorySearch, time.Minute)
		if err == nil {
			t.Fatalf("expected rejection for %s", payload)
		}
	}

	if err := store.Set(ctx, "k", []byte(`{"title":"token of esteem"}`), CategorySearch, time.Minute); err != nil {
		t.Fatalf("benign payload rejected: %v", err)
	}
}

func TestOverwriteReplacesRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte(`{"v":1}`), CategorySearch, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, "k", []byte(`{"v":2}`), CategorySearch, time.Minute); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, ok := store.Get(ctx, "k", CategorySearch)
	if !ok || string(got) != `{"v":2}` {
		t.Fatalf("payload = %s, ok = %v", got, ok)
	}
	counts, err := store.CountByCategory(ctx)
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if counts[CategorySearch] != 1 {
		t.Fatalf("counts = %v, want single row", counts)
	}
}

func TestDeleteAndClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "a", []byte(`{"v":1}`), CategorySearch, time.Minute)
	_ = store.Set(ctx, "b", []byte(`{"v":2}`), CategoryDetail, time.Minute)

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, "a", CategorySearch); ok {
		t.Fatal("deleted key should miss")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	info, err := store.GetInfo(ctx)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info.CacheItems != 0 {
		t.Fatalf("items = %d after clear", info.CacheItems)
	}
}

func TestGetInfoTracksHitRatio(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte(`{"v":1}`), CategorySearch, time.Minute)
	store.Get(ctx, "k", CategorySearch)    // hit
	store.Get(ctx, "miss", CategorySearch) // miss

	info, err := store.GetInfo(ctx)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info.TotalRequests != 2 {
		t.Fatalf("requests = %d, want 2", info.TotalRequests)
	}
	if info.HitRatio != 50 {
		t.Fatalf("hit ratio = %v, want 50", info.HitRatio)
	}
	if info.CacheType != "sqlite" {
		t.Fatalf("cache type = %q", info.CacheType)
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "shared", []byte(`{"v":1}`), CategorySearch, time.Minute)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				store.Get(ctx, "shared", CategorySearch)
			}
		}()
	}
	for j := 0; j < 25; j++ {
		if err := store.Set(ctx, "shared", []byte(`{"v":2}`), CategorySearch, time.Minute); err != nil {
			t.Errorf("concurrent set failed: %v", err)
		}
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
