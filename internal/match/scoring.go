package match

import (
	"fmt"
	"log/slog"
	"strings"

	"reelmatch/internal/logging"
	"reelmatch/internal/textutil"
)

// ScorerResult is one scorer's contribution: a score in [0, 1], its weight,
// and a human-readable reason for explainable rankings.
type ScorerResult struct {
	Score  float64
	Weight float64
	Reason string
}

// Scorer computes one independent signal for a (query, candidate) pair.
type Scorer interface {
	Name() string
	Score(q Query, c Candidate) ScorerResult
}

// TitleScorer compares the query title with the candidate title. Policy, in
// order: exact match, case-insensitive exact, substring containment either
// direction, token-order-independent fuzzy ratio.
type TitleScorer struct {
	Weight float64
}

func (TitleScorer) Name() string { return "title" }

func (s TitleScorer) Score(q Query, c Candidate) ScorerResult {
	weight := s.Weight
	if weight <= 0 {
		weight = 0.5
	}

	queryTitle := strings.TrimSpace(q.Title)
	candidateTitle := strings.TrimSpace(c.Title)
	if queryTitle == "" || candidateTitle == "" {
		return ScorerResult{Score: 0, Weight: weight, Reason: "missing title"}
	}

	switch {
	case queryTitle == candidateTitle:
		return ScorerResult{Score: 1.0, Weight: weight, Reason: "exact title match"}
	case strings.EqualFold(queryTitle, candidateTitle):
		return ScorerResult{Score: 0.95, Weight: weight, Reason: "case-insensitive title match"}
	}

	queryLower := strings.ToLower(queryTitle)
	candidateLower := strings.ToLower(candidateTitle)
	if strings.Contains(candidateLower, queryLower) || strings.Contains(queryLower, candidateLower) {
		return ScorerResult{Score: 0.8, Weight: weight, Reason: "substring title match"}
	}

	ratio := textutil.TokenSortRatio(queryTitle, candidateTitle)
	return ScorerResult{Score: ratio, Weight: weight, Reason: fmt.Sprintf("fuzzy title ratio %.2f", ratio)}
}

// YearScorer compares the query year with the candidate's release year.
// A missing year on either side scores zero; within tolerance the score
// decays linearly.
type YearScorer struct {
	Weight    float64
	Tolerance int
}

func (YearScorer) Name() string { return "year" }

func (s YearScorer) Score(q Query, c Candidate) ScorerResult {
	weight := s.Weight
	if weight <= 0 {
		weight = 0.3
	}
	tolerance := s.Tolerance
	if tolerance < 0 {
		tolerance = 0
	}

	candidateYear := c.Year()
	if q.Year == 0 || candidateYear == 0 {
		return ScorerResult{Score: 0, Weight: weight, Reason: "year unknown"}
	}

	delta := q.Year - candidateYear
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta == 0:
		return ScorerResult{Score: 1.0, Weight: weight, Reason: "exact year match"}
	case delta <= tolerance:
		score := 1 - float64(delta)/float64(tolerance+1)
		return ScorerResult{Score: score, Weight: weight, Reason: fmt.Sprintf("year within tolerance (delta %d)", delta)}
	default:
		return ScorerResult{Score: 0, Weight: weight, Reason: fmt.Sprintf("year mismatch (delta %d)", delta)}
	}
}

// KindScorer rewards candidates whose media kind agrees with the episode
// structure of the query.
type KindScorer struct {
	Weight float64
}

func (KindScorer) Name() string { return "kind" }

func (s KindScorer) Score(q Query, c Candidate) ScorerResult {
	weight := s.Weight
	if weight <= 0 {
		weight = 0.2
	}

	if q.ExpectsSeries() {
		if c.Kind == KindSeries {
			return ScorerResult{Score: 1.0, Weight: weight, Reason: "series kind matches episode query"}
		}
		return ScorerResult{Score: 0.1, Weight: weight, Reason: "film candidate for episode query"}
	}
	if c.Kind == KindFilm {
		return ScorerResult{Score: 1.0, Weight: weight, Reason: "film kind matches bare title"}
	}
	return ScorerResult{Score: 0.6, Weight: weight, Reason: "series candidate for bare title"}
}

// ScoringEngine combines independent scorers into a single confidence.
type ScoringEngine struct {
	scorers []Scorer
	logger  *slog.Logger
}

// NewScoringEngine builds the default scorer set: title similarity, year
// proximity, and kind compatibility.
func NewScoringEngine(yearTolerance int, logger *slog.Logger) *ScoringEngine {
	return &ScoringEngine{
		scorers: []Scorer{
			TitleScorer{Weight: 0.5},
			YearScorer{Weight: 0.3, Tolerance: yearTolerance},
			KindScorer{Weight: 0.2},
		},
		logger: logging.NewComponentLogger(logger, "scoring"),
	}
}

// NewScoringEngineWith builds an engine from explicit scorers, for callers
// that tune the scorer set.
func NewScoringEngineWith(logger *slog.Logger, scorers ...Scorer) *ScoringEngine {
	return &ScoringEngine{
		scorers: scorers,
		logger:  logging.NewComponentLogger(logger, "scoring"),
	}
}

// Score computes the weighted confidence for one candidate. Weights are
// normalized to sum to one; a panicking scorer contributes zero and scoring
// continues. The confidence is always recomputed from the query and the
// candidate's own fields.
func (e *ScoringEngine) Score(q Query, c Candidate) ScoredCandidate {
	results := make([]ScorerResult, 0, len(e.scorers))
	for _, scorer := range e.scorers {
		results = append(results, e.scoreOne(scorer, q, c))
	}

	totalWeight := 0.0
	for _, res := range results {
		totalWeight += res.Weight
	}
	if totalWeight <= 0 {
		// Degenerate configuration: fall back to equal weights.
		e.logger.Warn("scorer weights sum to zero; using equal weights",
			logging.Int("scorers", len(results)))
		for i := range results {
			results[i].Weight = 1
		}
		totalWeight = float64(len(results))
	}

	confidence := 0.0
	reasons := make([]string, 0, len(results))
	for i, res := range results {
		confidence += res.Score * (res.Weight / totalWeight)
		reasons = append(reasons, fmt.Sprintf("%s: %s", e.scorers[i].Name(), res.Reason))
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return ScoredCandidate{Candidate: c, Confidence: confidence, Reasons: reasons}
}

func (e *ScoringEngine) scoreOne(scorer Scorer, q Query, c Candidate) (result ScorerResult) {
	defer func() {
		if recovered := recover(); recovered != nil {
			e.logger.Warn("scorer panicked; contributing zero",
				logging.String("scorer", scorer.Name()),
				logging.Any("panic", recovered))
			result = ScorerResult{Score: 0, Weight: 0, Reason: fmt.Sprintf("scorer failed: %v", recovered)}
		}
	}()
	return scorer.Score(q, c)
}
