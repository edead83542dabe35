package match

import "testing"

func TestNewQueryNormalizes(t *testing.T) {
	q, err := NewQuery("  The   Matrix ", 1999, -1, -2)
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}
	if q.Title != "The Matrix" {
		t.Errorf("title = %q, want collapsed whitespace", q.Title)
	}
	if q.Season != 0 || q.Episode != 0 {
		t.Errorf("negative season/episode not zeroed: %+v", q)
	}
}

func TestNewQueryRequiresTitle(t *testing.T) {
	if _, err := NewQuery("   ", 2020, 0, 0); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestExpectsSeries(t *testing.T) {
	if (Query{Title: "x"}).ExpectsSeries() {
		t.Error("bare title should not expect a series")
	}
	if !(Query{Title: "x", Season: 2}).ExpectsSeries() {
		t.Error("season should imply a series")
	}
	if !(Query{Title: "x", Episode: 5}).ExpectsSeries() {
		t.Error("episode should imply a series")
	}
}

func TestQueryString(t *testing.T) {
	q := Query{Title: "Severance", Year: 2022, Season: 1, Episode: 2}
	if got := q.String(); got != "Severance (2022) S01E02" {
		t.Errorf("String() = %q", got)
	}
}
