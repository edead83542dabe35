package cache

import (
	"context"
	"fmt"
)

// Info summarizes cache health for the stats surface exposed to callers.
type Info struct {
	HitRatio      float64 `json:"hit_ratio"` // percentage, 0..100
	TotalRequests int64   `json:"total_requests"`
	CacheItems    int64   `json:"cache_items"`
	CacheType     string  `json:"cache_type"`
	Degraded      bool    `json:"degraded"`
	Path          string  `json:"path"`
}

// CountByCategory reports current row counts grouped by cache category.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT cache_type, COUNT(1) FROM cache_entries GROUP BY cache_type`)
	if err != nil {
		return nil, fmt.Errorf("cache counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// GetInfo aggregates hit-ratio and row counts for observability. Counter
// state is per-process; row counts come from the database.
func (s *Store) GetInfo(ctx context.Context) (Info, error) {
	var items int64
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(1) FROM cache_entries`).Scan(&items)
	if err != nil {
		return Info{}, fmt.Errorf("cache info: %w", err)
	}

	s.mu.Lock()
	hits := s.hits
	requests := s.requests
	degraded := s.degraded
	s.mu.Unlock()

	ratio := 0.0
	if requests > 0 {
		ratio = float64(hits) / float64(requests) * 100
	}

	return Info{
		HitRatio:      ratio,
		TotalRequests: requests,
		CacheItems:    items,
		CacheType:     "sqlite",
		Degraded:      degraded,
		Path:          s.path,
	}, nil
}
