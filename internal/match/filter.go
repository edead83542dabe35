package match

import "sort"

// FilterByYear narrows candidates to those whose release year falls within
// tolerance of the query year. Candidates without a parseable year are kept
// so that sparse catalog records are not silently dropped. When the query
// has no year the input is returned unchanged; when every candidate carries
// a mismatched year the result is empty and the caller reports no match.
func FilterByYear(q Query, candidates []Candidate, tolerance int) []Candidate {
	if q.Year == 0 || len(candidates) == 0 {
		return candidates
	}
	if tolerance < 0 {
		tolerance = 0
	}

	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		year := c.Year()
		if year == 0 {
			filtered = append(filtered, c)
			continue
		}
		delta := q.Year - year
		if delta < 0 {
			delta = -delta
		}
		if delta <= tolerance {
			filtered = append(filtered, c)
		}
	}

	// Closest year first; unknown years sort last.
	sort.SliceStable(filtered, func(i, j int) bool {
		return yearDistance(q.Year, filtered[i].Year()) < yearDistance(q.Year, filtered[j].Year())
	})
	return filtered
}

func yearDistance(queryYear, candidateYear int) int {
	if candidateYear == 0 {
		return 1 << 30
	}
	delta := queryYear - candidateYear
	if delta < 0 {
		delta = -delta
	}
	return delta
}
