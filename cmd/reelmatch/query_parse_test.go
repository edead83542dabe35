package main

import (
	"testing"

	"reelmatch/internal/match"
)

func TestParseQueryArg(t *testing.T) {
	cases := []struct {
		arg  string
		want match.Query
	}{
		{"Inception (2010)", match.Query{Title: "Inception", Year: 2010}},
		{"Inception 2010", match.Query{Title: "Inception", Year: 2010}},
		{"Severance S01E02", match.Query{Title: "Severance", Season: 1, Episode: 2}},
		{"The Wire S03", match.Query{Title: "The Wire", Season: 3}},
		{"Breaking Bad (2008) S01E01", match.Query{Title: "Breaking Bad", Year: 2008, Season: 1, Episode: 1}},
		{"2001", match.Query{Title: "2001"}},
		{"Blade Runner 2049", match.Query{Title: "Blade Runner", Year: 2049}},
	}
	for _, tc := range cases {
		got, err := parseQueryArg(tc.arg, 0, 0, 0)
		if err != nil {
			t.Errorf("parseQueryArg(%q): %v", tc.arg, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseQueryArg(%q) = %+v, want %+v", tc.arg, got, tc.want)
		}
	}
}

func TestParseQueryArgFlagOverrides(t *testing.T) {
	got, err := parseQueryArg("Dune (2021)", 1984, 0, 0)
	if err != nil {
		t.Fatalf("parseQueryArg: %v", err)
	}
	if got.Year != 1984 {
		t.Errorf("year = %d, want flag override 1984", got.Year)
	}
}

func TestParseQueryArgRejectsEmpty(t *testing.T) {
	if _, err := parseQueryArg("   ", 0, 0, 0); err == nil {
		t.Fatal("expected error for empty title")
	}
}
