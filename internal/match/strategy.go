package match

import (
	"context"
	"fmt"
	"log/slog"

	"reelmatch/internal/logging"
	"reelmatch/internal/tmdb"
)

// SearchClient is the catalog surface strategies need. It is satisfied by
// catalog.Client.
type SearchClient interface {
	SearchMovie(ctx context.Context, title string, opts tmdb.SearchOptions) (*tmdb.Response, error)
	SearchTV(ctx context.Context, title string, opts tmdb.SearchOptions) (*tmdb.Response, error)
	GetDetails(ctx context.Context, id int64, kind string) (*tmdb.Result, error)
}

// Strategy fetches candidates for a query from one catalog endpoint.
// Strategies never fail the whole match on a single bad record; malformed
// results are skipped and logged.
type Strategy interface {
	Name() string
	Candidates(ctx context.Context, q Query) ([]Candidate, error)
}

// FilmStrategy searches the movie endpoint.
type FilmStrategy struct {
	client SearchClient
	logger *slog.Logger
}

// NewFilmStrategy returns a strategy backed by the catalog movie search.
func NewFilmStrategy(client SearchClient, logger *slog.Logger) *FilmStrategy {
	return &FilmStrategy{client: client, logger: logging.NewComponentLogger(logger, "strategy-film")}
}

func (*FilmStrategy) Name() string { return "film" }

func (s *FilmStrategy) Candidates(ctx context.Context, q Query) ([]Candidate, error) {
	resp, err := s.client.SearchMovie(ctx, q.Title, tmdb.SearchOptions{Year: q.Year})
	if err != nil {
		return nil, fmt.Errorf("film search: %w", err)
	}
	return convertResults(resp, KindFilm, s.logger), nil
}

// SeriesStrategy searches the TV endpoint.
type SeriesStrategy struct {
	client SearchClient
	logger *slog.Logger
}

// NewSeriesStrategy returns a strategy backed by the catalog TV search.
func NewSeriesStrategy(client SearchClient, logger *slog.Logger) *SeriesStrategy {
	return &SeriesStrategy{client: client, logger: logging.NewComponentLogger(logger, "strategy-series")}
}

func (*SeriesStrategy) Name() string { return "series" }

func (s *SeriesStrategy) Candidates(ctx context.Context, q Query) ([]Candidate, error) {
	resp, err := s.client.SearchTV(ctx, q.Title, tmdb.SearchOptions{Year: q.Year})
	if err != nil {
		return nil, fmt.Errorf("series search: %w", err)
	}
	return convertResults(resp, KindSeries, s.logger), nil
}

func convertResults(resp *tmdb.Response, kind MediaKind, logger *slog.Logger) []Candidate {
	if resp == nil || len(resp.Results) == 0 {
		return nil
	}
	candidates := make([]Candidate, 0, len(resp.Results))
	for _, res := range resp.Results {
		candidate, err := candidateFromResult(res, kind)
		if err != nil {
			logger.Warn("skipping malformed catalog result", logging.Error(err))
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}
