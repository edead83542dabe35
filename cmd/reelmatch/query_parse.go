package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"reelmatch/internal/match"
)

var (
	yearSuffixRe   = regexp.MustCompile(`\((\d{4})\)\s*$`)
	episodeTailRe  = regexp.MustCompile(`(?i)\bS(\d{1,2})E(\d{1,3})\s*$`)
	seasonOnlyRe   = regexp.MustCompile(`(?i)\bS(\d{1,2})\s*$`)
	yearBareTailRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\s*$`)
)

// parseQueryArg turns a free-form argument like "Inception (2010)" or
// "Severance S01E02" into a query. Flag values override anything parsed
// from the argument.
func parseQueryArg(arg string, year, season, episode int) (match.Query, error) {
	title := strings.TrimSpace(arg)

	if m := episodeTailRe.FindStringSubmatch(title); m != nil {
		if season == 0 {
			season, _ = strconv.Atoi(m[1])
		}
		if episode == 0 {
			episode, _ = strconv.Atoi(m[2])
		}
		title = strings.TrimSpace(title[:len(title)-len(m[0])])
	} else if m := seasonOnlyRe.FindStringSubmatch(title); m != nil {
		if season == 0 {
			season, _ = strconv.Atoi(m[1])
		}
		title = strings.TrimSpace(title[:len(title)-len(m[0])])
	}

	if m := yearSuffixRe.FindStringSubmatch(title); m != nil {
		if year == 0 {
			year, _ = strconv.Atoi(m[1])
		}
		title = strings.TrimSpace(title[:len(title)-len(m[0])])
	} else if m := yearBareTailRe.FindStringSubmatch(title); m != nil {
		// A bare trailing year is ambiguous for titles like "2001"; only
		// strip it when something precedes it.
		if prefix := strings.TrimSpace(title[:len(title)-len(m[0])]); prefix != "" {
			if year == 0 {
				year, _ = strconv.Atoi(m[1])
			}
			title = prefix
		}
	}

	q, err := match.NewQuery(title, year, season, episode)
	if err != nil {
		return match.Query{}, fmt.Errorf("parse %q: %w", arg, err)
	}
	return q, nil
}
