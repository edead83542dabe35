package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"reelmatch/internal/catalog"
	"reelmatch/internal/logging"
)

// Options configures the matching engine. Zero values take catalog-tuned
// defaults.
type Options struct {
	HighThreshold float64
	LowThreshold  float64
	YearTolerance int
	Concurrency   int
	Logger        *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.HighThreshold <= 0 {
		o.HighThreshold = 0.8
	}
	if o.LowThreshold <= 0 {
		o.LowThreshold = 0.3
	}
	if o.YearTolerance <= 0 {
		o.YearTolerance = 1
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// Outcome is the result of one match attempt. Result is nil when no
// candidate cleared the acceptance threshold.
type Outcome struct {
	Query        Query   `json:"query"`
	Result       *Result `json:"result"`
	UsedFallback bool    `json:"used_fallback"`
	Candidates   int     `json:"candidates"`
	Degraded     bool    `json:"degraded"`
	Err          error   `json:"-"`
}

// Matched reports whether a candidate was accepted.
func (o Outcome) Matched() bool { return o.Result != nil }

// Engine orchestrates search strategies, scoring, filtering, and fallbacks
// into a single match decision per query. Engines are safe for concurrent
// use.
type Engine struct {
	client     SearchClient
	strategies []Strategy
	scoring    *ScoringEngine
	fallbacks  []Fallback
	opts       Options
	logger     *slog.Logger
	stats      statsCollector
}

// NewEngine builds an engine with the default strategy, scorer, and
// fallback chain.
func NewEngine(client SearchClient, opts Options) *Engine {
	opts = opts.withDefaults()
	logger := logging.NewComponentLogger(opts.Logger, "match")
	return &Engine{
		client: client,
		strategies: []Strategy{
			NewFilmStrategy(client, opts.Logger),
			NewSeriesStrategy(client, opts.Logger),
		},
		scoring: NewScoringEngine(opts.YearTolerance, opts.Logger),
		fallbacks: []Fallback{
			GenreBoost{},
			PartialTitleBoost{},
		},
		opts:   opts,
		logger: logger,
	}
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot()
}

// FindMatch runs the full pipeline for one query. It returns a nil Result,
// not an error, when nothing matched; an error means every strategy failed
// and no candidates were seen. Unexpected panics from bad candidate data
// are converted into a no-match outcome.
func (e *Engine) FindMatch(ctx context.Context, q Query) (outcome Outcome) {
	e.stats.recordAttempt()
	outcome.Query = q

	defer func() {
		if recovered := recover(); recovered != nil {
			e.logger.Error("match pipeline panicked",
				logging.String("query", q.String()),
				logging.Any("panic", recovered))
			e.stats.recordFailure()
			outcome = Outcome{Query: q, Err: fmt.Errorf("match %q: internal error: %v", q.Title, recovered)}
		}
	}()

	candidates, degraded, err := e.collect(ctx, q)
	outcome.Degraded = degraded
	if degraded {
		e.stats.recordDegraded()
	}
	if err != nil {
		e.stats.recordFailure()
		outcome.Err = err
		return outcome
	}
	e.stats.recordCandidates(len(candidates))
	outcome.Candidates = len(candidates)
	if len(candidates) == 0 {
		e.stats.recordFailure()
		e.logger.Info("no candidates for query", logging.String("query", q.String()))
		return outcome
	}

	candidates = FilterByYear(q, candidates, e.opts.YearTolerance)
	if len(candidates) == 0 {
		e.stats.recordFailure()
		e.logger.Info("every candidate filtered out by year",
			logging.String("query", q.String()))
		return outcome
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, e.scoring.Score(q, c))
	}
	rankCandidates(scored)

	// The high threshold only decides whether the fallback chain runs; the
	// low threshold below is the acceptance floor.
	if scored[0].Confidence < e.opts.HighThreshold {
		boosted, applied := e.applyFallbacks(q, scored)
		if applied && boosted[0].Confidence > scored[0].Confidence {
			scored = boosted
			outcome.UsedFallback = true
			e.stats.recordFallback()
		}
	}

	best := scored[0]
	if best.Confidence < e.opts.LowThreshold {
		e.stats.recordFailure()
		e.logger.Info("best candidate below acceptance floor",
			logging.String("query", q.String()),
			logging.String("candidate", best.Candidate.Title),
			logging.Float64("confidence", best.Confidence))
		return outcome
	}

	result := e.buildResult(ctx, q, best)
	outcome.Result = &result
	e.stats.recordMatch()
	e.logger.Info("match accepted",
		logging.String("query", q.String()),
		logging.String("title", result.Title),
		logging.Int64("catalog_id", result.ID),
		logging.Float64("confidence", result.Confidence),
		logging.Bool("used_fallback", outcome.UsedFallback))
	return outcome
}

// collect runs the strategies in kind order and merges their candidates.
// A single failing strategy is tolerated; the error surfaces only when
// every strategy failed and nothing was collected.
func (e *Engine) collect(ctx context.Context, q Query) ([]Candidate, bool, error) {
	strategies := e.orderedStrategies(q)

	var (
		candidates []Candidate
		errs       []error
		degraded   bool
	)
	seen := make(map[int64]bool)
	for _, strat := range strategies {
		found, err := strat.Candidates(ctx, q)
		if err != nil {
			if errors.Is(err, catalog.ErrDegraded) {
				degraded = true
			}
			if ctx.Err() != nil {
				return nil, degraded, fmt.Errorf("match %q: %w", q.Title, ctx.Err())
			}
			e.logger.Warn("strategy failed",
				logging.String("strategy", strat.Name()),
				logging.String("query", q.String()),
				logging.Error(err))
			errs = append(errs, err)
			continue
		}
		for _, c := range found {
			// Film and series ids live in separate namespaces.
			key := c.ID
			if c.Kind == KindSeries {
				key = -c.ID
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 && len(errs) == len(strategies) && len(errs) > 0 {
		return nil, degraded, fmt.Errorf("match %q: all strategies failed: %w", q.Title, errors.Join(errs...))
	}
	return candidates, degraded, nil
}

// orderedStrategies puts the kind the query expects first so its results
// win deterministic ties.
func (e *Engine) orderedStrategies(q Query) []Strategy {
	ordered := make([]Strategy, len(e.strategies))
	copy(ordered, e.strategies)
	if q.ExpectsSeries() {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Name() == "series" && ordered[j].Name() != "series"
		})
	}
	return ordered
}

func (e *Engine) applyFallbacks(q Query, scored []ScoredCandidate) ([]ScoredCandidate, bool) {
	boosted := make([]ScoredCandidate, len(scored))
	copy(boosted, scored)
	for i := range boosted {
		boosted[i].Reasons = append([]string(nil), boosted[i].Reasons...)
	}

	applied := false
	for _, fb := range e.fallbacks {
		var changed bool
		boosted, changed = fb.Apply(q, boosted)
		if changed {
			applied = true
			e.logger.Debug("fallback applied",
				logging.String("fallback", fb.Name()),
				logging.String("query", q.String()))
		}
	}
	if !applied {
		return scored, false
	}
	rankCandidates(boosted)
	return boosted, true
}

// buildResult converts the winning candidate, enriching it with catalog
// details when they are available. Enrichment failures are logged and the
// search-level fields stand.
func (e *Engine) buildResult(ctx context.Context, q Query, best ScoredCandidate) Result {
	c := best.Candidate
	result := Result{
		ID:         c.ID,
		Title:      c.Title,
		Year:       c.Year(),
		Confidence: best.Confidence,
		Kind:       c.Kind,
		PosterURL:  c.PosterURL(),
		Overview:   c.Overview,
		Rating:     c.VoteAverage,
	}

	detail, err := e.client.GetDetails(ctx, c.ID, string(c.Kind))
	if err != nil {
		e.logger.Warn("detail enrichment failed",
			logging.Int64("catalog_id", c.ID),
			logging.Error(err))
		return result
	}
	if detail == nil {
		return result
	}
	for _, genre := range detail.Genres {
		if genre.Name != "" {
			result.Genres = append(result.Genres, genre.Name)
		}
	}
	if detail.NumberOfSeasons > 0 {
		result.SeasonCount = detail.NumberOfSeasons
	}
	if detail.VoteAverage > 0 {
		result.Rating = detail.VoteAverage
	}
	if overview := detail.Overview; overview != "" {
		result.Overview = overview
	}
	return result
}

// rankCandidates orders by confidence, breaking ties by vote count then
// title so reruns produce identical rankings.
func rankCandidates(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Confidence != scored[j].Confidence {
			return scored[i].Confidence > scored[j].Confidence
		}
		if scored[i].Candidate.VoteCount != scored[j].Candidate.VoteCount {
			return scored[i].Candidate.VoteCount > scored[j].Candidate.VoteCount
		}
		return scored[i].Candidate.Title < scored[j].Candidate.Title
	})
}

// MatchAll matches a batch of queries with bounded parallelism. Outcomes
// are returned in input order; a cancelled context stops scheduling and
// marks the remaining queries with the context error.
func (e *Engine) MatchAll(ctx context.Context, queries []Query) []Outcome {
	outcomes := make([]Outcome, len(queries))
	sem := make(chan struct{}, e.opts.Concurrency)

	var wg sync.WaitGroup
	for i, q := range queries {
		if ctx.Err() != nil {
			outcomes[i] = Outcome{Query: q, Err: ctx.Err()}
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, q Query) {
			defer wg.Done()
			defer func() { <-sem }()
			runID := uuid.NewString()
			runCtx := logging.WithRunID(ctx, runID)
			outcomes[i] = e.FindMatch(runCtx, q)
		}(i, q)
	}
	wg.Wait()
	return outcomes
}
