package match

import "sync"

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	Attempts       int64 `json:"attempts"`
	Matches        int64 `json:"matches"`
	Failures       int64 `json:"failures"`
	FallbackUsed   int64 `json:"fallback_used"`
	CandidatesSeen int64 `json:"candidates_seen"`
	Degraded       int64 `json:"degraded"`
}

// statsCollector accumulates engine counters across concurrent matches.
type statsCollector struct {
	mu    sync.Mutex
	stats Stats
}

func (s *statsCollector) recordAttempt() {
	s.mu.Lock()
	s.stats.Attempts++
	s.mu.Unlock()
}

func (s *statsCollector) recordMatch() {
	s.mu.Lock()
	s.stats.Matches++
	s.mu.Unlock()
}

func (s *statsCollector) recordFailure() {
	s.mu.Lock()
	s.stats.Failures++
	s.mu.Unlock()
}

func (s *statsCollector) recordFallback() {
	s.mu.Lock()
	s.stats.FallbackUsed++
	s.mu.Unlock()
}

func (s *statsCollector) recordCandidates(n int) {
	s.mu.Lock()
	s.stats.CandidatesSeen += int64(n)
	s.mu.Unlock()
}

func (s *statsCollector) recordDegraded() {
	s.mu.Lock()
	s.stats.Degraded++
	s.mu.Unlock()
}

func (s *statsCollector) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
