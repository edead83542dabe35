package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelmatch/internal/match"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		yearFlag    int
		seasonFlag  int
		episodeFlag int
		jsonFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "match TITLE...",
		Short: "Match one or more titles against the catalog",
		Long: `Match parses each argument as a title with an optional year and episode
marker, for example "Inception (2010)" or "Severance S01E02", runs the
matching pipeline, and prints the accepted match per title.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := make([]match.Query, 0, len(args))
			for _, arg := range args {
				q, err := parseQueryArg(arg, yearFlag, seasonFlag, episodeFlag)
				if err != nil {
					return err
				}
				queries = append(queries, q)
			}

			svc, err := ctx.buildServices()
			if err != nil {
				return err
			}
			defer svc.Close()

			outcomes := svc.Engine.MatchAll(cmd.Context(), queries)
			stats := svc.Engine.Stats()

			if jsonFlag {
				return writeJSON(cmd, struct {
					Outcomes []matchReport `json:"outcomes"`
					Stats    match.Stats   `json:"stats"`
				}{Outcomes: buildReports(outcomes), Stats: stats})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderOutcomes(outcomes))
			fmt.Fprintln(out, renderSummary(stats, isTerminal(out)))

			return firstHardError(outcomes)
		},
	}

	cmd.Flags().IntVarP(&yearFlag, "year", "y", 0, "Release year hint applied to every title")
	cmd.Flags().IntVarP(&seasonFlag, "season", "s", 0, "Season number applied to every title")
	cmd.Flags().IntVarP(&episodeFlag, "episode", "e", 0, "Episode number applied to every title")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON")
	return cmd
}

// matchReport is the JSON shape for a single outcome; engine errors become
// strings so they survive encoding.
type matchReport struct {
	Query        string        `json:"query"`
	Result       *match.Result `json:"result"`
	UsedFallback bool          `json:"used_fallback"`
	Candidates   int           `json:"candidates"`
	Degraded     bool          `json:"degraded"`
	Error        string        `json:"error,omitempty"`
}

func buildReports(outcomes []match.Outcome) []matchReport {
	reports := make([]matchReport, 0, len(outcomes))
	for _, outcome := range outcomes {
		report := matchReport{
			Query:        outcome.Query.String(),
			Result:       outcome.Result,
			UsedFallback: outcome.UsedFallback,
			Candidates:   outcome.Candidates,
			Degraded:     outcome.Degraded,
		}
		if outcome.Err != nil {
			report.Error = outcome.Err.Error()
		}
		reports = append(reports, report)
	}
	return reports
}

func renderOutcomes(outcomes []match.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, outcomeRow(outcome))
	}
	return renderTable(
		[]string{"Query", "Match", "Year", "Kind", "Confidence", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	)
}

func outcomeRow(outcome match.Outcome) []string {
	query := outcome.Query.String()
	switch {
	case outcome.Err != nil:
		return []string{query, "-", "-", "-", "-", "error: " + outcome.Err.Error()}
	case !outcome.Matched():
		note := "no confident match"
		if outcome.Degraded {
			note += " (degraded)"
		}
		return []string{query, "-", "-", "-", "-", note}
	}

	result := outcome.Result
	year := "-"
	if result.Year > 0 {
		year = strconv.Itoa(result.Year)
	}
	var notes []string
	if outcome.UsedFallback {
		notes = append(notes, "fallback")
	}
	if outcome.Degraded {
		notes = append(notes, "degraded")
	}
	if len(result.Genres) > 0 {
		notes = append(notes, strings.Join(result.Genres, "/"))
	}
	return []string{
		query,
		result.Title,
		year,
		string(result.Kind),
		fmt.Sprintf("%.0f%%", result.Confidence*100),
		strings.Join(notes, ", "),
	}
}

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func renderSummary(stats match.Stats, colorize bool) string {
	line := fmt.Sprintf("Matched %d of %d (fallback used %d, degraded %d)",
		stats.Matches, stats.Attempts, stats.FallbackUsed, stats.Degraded)
	if !colorize {
		return line
	}
	if stats.Matches == stats.Attempts && stats.Degraded == 0 {
		return ansiGreen + line + ansiReset
	}
	return ansiYellow + line + ansiReset
}

// firstHardError surfaces pipeline failures so the process exits nonzero,
// but only when every single query errored.
func firstHardError(outcomes []match.Outcome) error {
	var first error
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			return nil
		}
		if first == nil {
			first = outcome.Err
		}
	}
	return first
}
