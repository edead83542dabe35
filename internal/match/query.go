package match

import (
	"fmt"
	"strings"
)

// MediaKind identifies the content kind of a candidate.
type MediaKind string

const (
	// KindFilm is a standalone movie.
	KindFilm MediaKind = "movie"
	// KindSeries is episodic television.
	KindSeries MediaKind = "tv"
)

// Query is the normalized search input extracted from a media filename.
// Zero means unknown for Year, Season, and Episode. Queries are immutable;
// the engine never writes to one after construction.
type Query struct {
	Title   string
	Year    int
	Season  int
	Episode int
}

// NewQuery validates and normalizes raw parser output. A missing title is
// the only hard precondition.
func NewQuery(title string, year, season, episode int) (Query, error) {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return Query{}, fmt.Errorf("query title required")
	}
	if year < 0 {
		year = 0
	}
	if season < 0 {
		season = 0
	}
	if episode < 0 {
		episode = 0
	}
	return Query{Title: title, Year: year, Season: season, Episode: episode}, nil
}

// ExpectsSeries reports whether the query carries episode structure.
func (q Query) ExpectsSeries() bool {
	return q.Season > 0 || q.Episode > 0
}

// String renders the query for logs without leaking anything beyond the
// title itself.
func (q Query) String() string {
	var builder strings.Builder
	builder.WriteString(q.Title)
	if q.Year > 0 {
		fmt.Fprintf(&builder, " (%d)", q.Year)
	}
	if q.Season > 0 {
		fmt.Fprintf(&builder, " S%02d", q.Season)
	}
	if q.Episode > 0 {
		fmt.Fprintf(&builder, "E%02d", q.Episode)
	}
	return builder.String()
}
