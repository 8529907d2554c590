// Package matching implements the catalog's fuzzy text matching: string
// normalization, brand alias resolution, and the multi-strategy predicate
// used to decide whether a user query matches a machine or a track size.
package matching

import (
	"regexp"
	"strings"
	"unicode"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// Normalize canonicalizes a string for comparison: lowercase, then strip
// whitespace, hyphens and underscores, then strip any remaining character
// that is not a letter, digit or underscore. "SVL 75", "svl-75" and
// "SVL_75" all normalize to "svl75".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	lowered := strings.ToLower(s)

	// First pass: drop separators.
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}

	// Second pass: drop remaining punctuation.
	return nonWord.ReplaceAllString(b.String(), "")
}
