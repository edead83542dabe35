package match

import (
	"fmt"
	"strconv"
	"strings"

	"reelmatch/internal/tmdb"
)

// Candidate is one catalog result in the uniform shape shared by all search
// strategies. Candidates are immutable values.
type Candidate struct {
	ID               int64
	Kind             MediaKind
	Title            string
	Date             string // display date, YYYY-MM-DD or empty
	Popularity       float64
	VoteAverage      float64
	VoteCount        int64
	Overview         string
	GenreIDs         []int64
	OriginalLanguage string
	PosterPath       string
	BackdropPath     string
}

// Year returns the release year parsed from the display date, or zero when
// unknown or malformed.
func (c Candidate) Year() int {
	if len(c.Date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(c.Date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

// PosterURL returns the full poster image URL, or empty when absent.
func (c Candidate) PosterURL() string {
	return tmdb.PosterURL(c.PosterPath)
}

// candidateFromResult converts a raw catalog result. Results without a
// positive id or a title are rejected; the caller skips them individually.
func candidateFromResult(res tmdb.Result, kind MediaKind) (Candidate, error) {
	if res.ID <= 0 {
		return Candidate{}, fmt.Errorf("non-positive catalog id %d", res.ID)
	}
	title := strings.TrimSpace(res.DisplayTitle())
	if title == "" {
		return Candidate{}, fmt.Errorf("candidate %d has no title", res.ID)
	}
	if res.MediaType != "" {
		kind = MediaKind(res.MediaType)
	}
	genres := res.GenreIDs
	if len(genres) == 0 && len(res.Genres) > 0 {
		genres = make([]int64, 0, len(res.Genres))
		for _, genre := range res.Genres {
			genres = append(genres, genre.ID)
		}
	}
	return Candidate{
		ID:               res.ID,
		Kind:             kind,
		Title:            title,
		Date:             strings.TrimSpace(res.DisplayDate()),
		Popularity:       res.Popularity,
		VoteAverage:      res.VoteAverage,
		VoteCount:        res.VoteCount,
		Overview:         res.Overview,
		GenreIDs:         genres,
		OriginalLanguage: res.OriginalLanguage,
		PosterPath:       res.PosterPath,
		BackdropPath:     res.BackdropPath,
	}, nil
}

// ScoredCandidate pairs a candidate with its confidence. Scored candidates
// are never mutated; fallback strategies replace them with higher-scored
// copies.
type ScoredCandidate struct {
	Candidate  Candidate
	Confidence float64
	Reasons    []string
}

// Result is the terminal output of a successful match.
type Result struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year,omitempty"`
	Confidence  float64   `json:"confidence"`
	Kind        MediaKind `json:"kind"`
	PosterURL   string    `json:"poster_url,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	SeasonCount int       `json:"season_count,omitempty"`
}
