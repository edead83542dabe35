package catalog

import (
	"strings"
)

const maxTitleVariants = 5

// TitleVariants returns the title followed by progressively simplified
// versions to try when the primary search yields nothing: bracketed segments
// stripped, subtitle after a colon or dash dropped, then trailing words
// removed one at a time. Duplicates are elided while preserving order.
func TitleVariants(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	variants := []string{title}
	seen := map[string]struct{}{strings.ToLower(title): {}}
	add := func(candidate string) {
		candidate = strings.Join(strings.Fields(candidate), " ")
		if candidate == "" {
			return
		}
		lower := strings.ToLower(candidate)
		if _, dup := seen[lower]; dup {
			return
		}
		seen[lower] = struct{}{}
		variants = append(variants, candidate)
	}

	add(stripBrackets(title))

	for _, separator := range []string{":", " - ", "–"} {
		if idx := strings.Index(title, separator); idx > 0 {
			add(stripBrackets(title[:idx]))
		}
	}

	// Drop trailing words from the shortest variant so far, keeping at
	// least two words.
	base := variants[len(variants)-1]
	words := strings.Fields(base)
	for len(words) > 2 && len(variants) < maxTitleVariants {
		words = words[:len(words)-1]
		add(strings.Join(words, " "))
	}

	if len(variants) > maxTitleVariants {
		variants = variants[:maxTitleVariants]
	}
	return variants
}

func stripBrackets(title string) string {
	var builder strings.Builder
	depth := 0
	for _, r := range title {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				builder.WriteRune(r)
			}
		}
	}
	return builder.String()
}
