package textutil

import (
	"sort"
	"strings"
)

// TokenSortRatio computes a token-order-independent similarity in [0, 1]:
// both titles are normalized, their tokens sorted, and the joined forms
// compared by edit distance.
func TokenSortRatio(a, b string) float64 {
	left := sortedTokens(a)
	right := sortedTokens(b)
	if left == "" || right == "" {
		return 0
	}
	if left == right {
		return 1
	}
	longest := len(left)
	if len(right) > longest {
		longest = len(right)
	}
	distance := Levenshtein(left, right)
	ratio := 1 - float64(distance)/float64(longest)
	if ratio < 0 {
		return 0
	}
	return ratio
}

func sortedTokens(title string) string {
	tokens := strings.Fields(NormalizeTitle(title))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Levenshtein returns the edit distance between two strings, counted in
// runes.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	previous := make([]int, len(rb)+1)
	current := make([]int, len(rb)+1)
	for j := range previous {
		previous[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		current[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current[j] = min3(
				previous[j]+1,
				current[j-1]+1,
				previous[j-1]+cost,
			)
		}
		previous, current = current, previous
	}
	return previous[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
