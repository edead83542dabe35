package main

import (
	"errors"
	"strings"
	"testing"

	"reelmatch/internal/match"
)

func TestOutcomeRowMatched(t *testing.T) {
	outcome := match.Outcome{
		Query: match.Query{Title: "Inception", Year: 2010},
		Result: &match.Result{
			ID:         27205,
			Title:      "Inception",
			Year:       2010,
			Confidence: 0.97,
			Kind:       match.KindFilm,
			Genres:     []string{"Science Fiction"},
		},
		UsedFallback: true,
	}

	row := outcomeRow(outcome)
	if row[1] != "Inception" {
		t.Errorf("match column = %q", row[1])
	}
	if row[4] != "97%" {
		t.Errorf("confidence column = %q, want 97%%", row[4])
	}
	if !strings.Contains(row[5], "fallback") {
		t.Errorf("notes column %q missing fallback marker", row[5])
	}
}

func TestOutcomeRowNoMatch(t *testing.T) {
	row := outcomeRow(match.Outcome{Query: match.Query{Title: "Unknown"}, Degraded: true})
	if row[1] != "-" {
		t.Errorf("match column = %q, want placeholder", row[1])
	}
	if !strings.Contains(row[5], "degraded") {
		t.Errorf("notes column %q missing degraded marker", row[5])
	}
}

func TestFirstHardError(t *testing.T) {
	boom := errors.New("boom")
	mixed := []match.Outcome{{Err: boom}, {}}
	if err := firstHardError(mixed); err != nil {
		t.Errorf("mixed outcomes should not fail the command: %v", err)
	}
	all := []match.Outcome{{Err: boom}, {Err: errors.New("again")}}
	if err := firstHardError(all); !errors.Is(err, boom) {
		t.Errorf("expected first error, got %v", err)
	}
}

func TestRenderSummaryColors(t *testing.T) {
	stats := match.Stats{Attempts: 2, Matches: 2}
	plain := renderSummary(stats, false)
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("plain summary contains ANSI codes: %q", plain)
	}
	colored := renderSummary(stats, true)
	if !strings.HasPrefix(colored, ansiGreen) {
		t.Errorf("fully matched summary should be green: %q", colored)
	}
	partial := renderSummary(match.Stats{Attempts: 2, Matches: 1}, true)
	if !strings.HasPrefix(partial, ansiYellow) {
		t.Errorf("partial summary should be yellow: %q", partial)
	}
}
