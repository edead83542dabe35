package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reelmatch/internal/logging"
)

// ErrSecretPayload indicates a write was rejected because the payload embeds
// what looks like a credential. The write fails closed rather than silently
// stripping the field.
var ErrSecretPayload = errors.New("payload contains a credential-like field")

// Categories tag cache rows so TTLs and purges can treat search responses and
// detail lookups differently.
const (
	CategorySearch = "search"
	CategoryDetail = "detail"
)

var secretFieldNames = map[string]struct{}{
	"api_key":       {},
	"apikey":        {},
	"authorization": {},
	"password":      {},
	"secret":        {},
	"token":         {},
	"access_token":  {},
	"refresh_token": {},
}

// NormalizeKey lower-cases and trims a cache key so semantically equal keys
// address the same row.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// KeyHash returns the SHA-256 hash of the normalized key as 64 hex characters.
func KeyHash(key string) string {
	sum := sha256.Sum256([]byte(NormalizeKey(key)))
	return hex.EncodeToString(sum[:])
}

// keyDebugPrefix is the only cleartext fragment of a raw key that ever
// reaches logs or the database.
func keyDebugPrefix(key string) string {
	normalized := NormalizeKey(key)
	if len(normalized) > 8 {
		normalized = normalized[:8]
	}
	return normalized
}

// Set stores data under key with the given category. A non-positive ttl
// clamps to the store default. Overwrites replace the previous row.
func (s *Store) Set(ctx context.Context, key string, data []byte, category string, ttl time.Duration) error {
	if NormalizeKey(key) == "" {
		return errors.New("cache key required")
	}
	if len(data) == 0 {
		return errors.New("cache payload required")
	}
	if !json.Valid(data) {
		return errors.New("cache payload must be valid JSON")
	}
	if err := rejectSecrets(data); err != nil {
		return err
	}
	if category = strings.TrimSpace(category); category == "" {
		category = CategorySearch
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	hash := KeyHash(key)
	now := time.Now().UTC()
	created := now.Format(time.RFC3339Nano)
	expires := now.Add(ttl).Format(time.RFC3339Nano)

	_, err := s.execWithRetry(
		ctx,
		`INSERT OR REPLACE INTO cache_entries (
            cache_key, key_hash, cache_type, response_data,
            created_at, expires_at, hit_count, last_accessed_at, response_size
        ) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		keyDebugPrefix(key)+"#"+hash,
		hash,
		category,
		string(data),
		created,
		expires,
		created,
		len(data),
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	s.logger.Debug("cache write",
		logging.String("key_prefix", keyDebugPrefix(key)),
		logging.String(logging.FieldCacheType, category),
		logging.Int("size", len(data)),
		logging.Duration("ttl", ttl))
	return nil
}

// Get returns the cached payload for key, or ok=false on a miss. Expired
// rows read as misses without being deleted. Every failure on the read path
// degrades to a miss: the cache must never become a correctness dependency.
func (s *Store) Get(ctx context.Context, key, category string) ([]byte, bool) {
	s.recordRequest()

	hash := KeyHash(key)
	var (
		data    string
		expires string
	)
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT response_data, expires_at FROM cache_entries WHERE key_hash = ? AND cache_type = ?`,
		hash, strings.TrimSpace(category),
	).Scan(&data, &expires)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("cache read degraded to miss",
				logging.Error(err),
				logging.String("key_prefix", keyDebugPrefix(key)),
				logging.String(logging.FieldErrorHint, "cache row unreadable; request will hit the network"),
				logging.String(logging.FieldImpact, "slower response for this query"))
		}
		return nil, false
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, expires)
	if err != nil {
		s.logger.Warn("cache row has malformed expiry; treating as miss",
			logging.Error(err),
			logging.String("key_prefix", keyDebugPrefix(key)))
		return nil, false
	}
	if !time.Now().UTC().Before(expiresAt) {
		return nil, false
	}
	if !json.Valid([]byte(data)) {
		s.logger.Warn("cache row corrupt; treating as miss",
			logging.String("key_prefix", keyDebugPrefix(key)))
		return nil, false
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(ctx,
		`UPDATE cache_entries SET hit_count = hit_count + 1, last_accessed_at = ? WHERE key_hash = ?`,
		now, hash,
	); err != nil {
		s.logger.Warn("cache hit bookkeeping failed", logging.Error(err))
	}

	s.recordHit()
	return []byte(data), true
}

// Delete removes the row for key, if present.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.execWithRetry(ctx, `DELETE FROM cache_entries WHERE key_hash = ?`, KeyHash(key))
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// PurgeExpired removes all rows past their expiry. It is idempotent and safe
// to run at any time.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("cache purge: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return purged, nil
}

// Clear removes every cache row.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ctx, `DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// SetDegraded marks the cache-stats surface as serving in degraded
// (cache-only) mode so callers can report it.
func (s *Store) SetDegraded(degraded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degraded = degraded
}

func (s *Store) recordRequest() {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

func (s *Store) recordHit() {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

func rejectSecrets(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if field := findSecretField(decoded); field != "" {
		return fmt.Errorf("%w: %q", ErrSecretPayload, field)
	}
	return nil
}

func findSecretField(value any) string {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			if _, forbidden := secretFieldNames[strings.ToLower(key)]; forbidden {
				return key
			}
			if field := findSecretField(nested); field != "" {
				return field
			}
		}
	case []any:
		for _, item := range v {
			if field := findSecretField(item); field != "" {
				return field
			}
		}
	}
	return ""
}
