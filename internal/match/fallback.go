package match

import (
	"fmt"
	"strings"

	"reelmatch/internal/textutil"
)

// Fallback adjusts scored candidates when the primary ranking is too weak
// to accept. Implementations return the adjusted slice and whether any
// candidate was changed.
type Fallback interface {
	Name() string
	Apply(q Query, scored []ScoredCandidate) ([]ScoredCandidate, bool)
}

// genreAnimation is the catalog genre id for animated titles.
const genreAnimation int64 = 16

// GenreBoost raises the confidence of candidates carrying a preferred genre.
// Release groups often mangle animated titles, so animation is boosted by
// default.
type GenreBoost struct {
	Genres []int64
	Boost  float64
}

func (GenreBoost) Name() string { return "genre_boost" }

func (f GenreBoost) Apply(q Query, scored []ScoredCandidate) ([]ScoredCandidate, bool) {
	genres := f.Genres
	if len(genres) == 0 {
		genres = []int64{genreAnimation}
	}
	boost := f.Boost
	if boost <= 0 {
		boost = 0.2
	}

	applied := false
	for i := range scored {
		if !hasAnyGenre(scored[i].Candidate.GenreIDs, genres) {
			continue
		}
		scored[i].Confidence = clampConfidence(scored[i].Confidence + boost)
		scored[i].Reasons = append(scored[i].Reasons, fmt.Sprintf("fallback: preferred genre boost +%.2f", boost))
		applied = true
	}
	return scored, applied
}

func hasAnyGenre(candidateGenres, wanted []int64) bool {
	for _, g := range candidateGenres {
		for _, w := range wanted {
			if g == w {
				return true
			}
		}
	}
	return false
}

// PartialTitleBoost rewards candidates whose normalized title shares a
// word-initial prefix with the query, which recovers truncated or subtitled
// release names that fuzzy matching scores poorly.
type PartialTitleBoost struct {
	Boost float64
}

func (PartialTitleBoost) Name() string { return "partial_title_boost" }

func (f PartialTitleBoost) Apply(q Query, scored []ScoredCandidate) ([]ScoredCandidate, bool) {
	boost := f.Boost
	if boost <= 0 {
		boost = 0.15
	}

	queryNorm := textutil.NormalizeTitle(q.Title)
	if queryNorm == "" {
		return scored, false
	}

	applied := false
	for i := range scored {
		candidateNorm := textutil.NormalizeTitle(scored[i].Candidate.Title)
		if candidateNorm == "" {
			continue
		}
		if !sharesWordPrefix(queryNorm, candidateNorm) {
			continue
		}
		scored[i].Confidence = clampConfidence(scored[i].Confidence + boost)
		scored[i].Reasons = append(scored[i].Reasons, fmt.Sprintf("fallback: partial title boost +%.2f", boost))
		applied = true
	}
	return scored, applied
}

// sharesWordPrefix reports whether one normalized title starts with the
// other at a word boundary.
func sharesWordPrefix(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if !strings.HasPrefix(longer, shorter) {
		return false
	}
	return len(longer) == len(shorter) || longer[len(shorter)] == ' '
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
