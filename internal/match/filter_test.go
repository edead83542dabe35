package match

import "testing"

func TestFilterByYearKeepsCloseAndUnknown(t *testing.T) {
	q := Query{Title: "x", Year: 2010}
	candidates := []Candidate{
		{ID: 1, Title: "far", Date: "1995-01-01"},
		{ID: 2, Title: "near", Date: "2011-03-02"},
		{ID: 3, Title: "exact", Date: "2010-06-01"},
		{ID: 4, Title: "dateless"},
	}

	filtered := FilterByYear(q, candidates, 1)
	if len(filtered) != 3 {
		t.Fatalf("got %d candidates, want 3", len(filtered))
	}
	if filtered[0].ID != 3 {
		t.Errorf("first candidate id = %d, want exact-year match 3", filtered[0].ID)
	}
	if filtered[2].ID != 4 {
		t.Errorf("last candidate id = %d, want dateless 4", filtered[2].ID)
	}
}

func TestFilterByYearNoQueryYearPassesThrough(t *testing.T) {
	candidates := []Candidate{{ID: 1, Date: "1960-01-01"}, {ID: 2, Date: "2020-01-01"}}
	filtered := FilterByYear(Query{Title: "x"}, candidates, 1)
	if len(filtered) != 2 {
		t.Fatalf("got %d candidates, want all 2", len(filtered))
	}
}

func TestFilterByYearRemovesEveryMismatch(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Date: "1990-01-01"},
		{ID: 2, Date: "2001-06-01"},
	}
	filtered := FilterByYear(Query{Title: "x", Year: 2013}, candidates, 1)
	if len(filtered) != 0 {
		t.Fatalf("got %d candidates, want 0", len(filtered))
	}
}
