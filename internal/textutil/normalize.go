package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleNormalizer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTitle lower-cases, strips accents, folds common symbols to words,
// and collapses whitespace so comparisons survive cosmetic differences.
func NormalizeTitle(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	lowered = strings.ReplaceAll(lowered, "&", "and")
	lowered = strings.ReplaceAll(lowered, "+", "and")
	if folded, _, err := transform.String(titleNormalizer, lowered); err == nil {
		lowered = folded
	}

	var builder strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			builder.WriteRune(r)
		default:
			builder.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}
