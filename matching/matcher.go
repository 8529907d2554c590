package matching

import "strings"

// Matcher decides whether a free-text query matches a catalog candidate.
// Structured matching runs an ordered waterfall of strategies from strictest
// to most permissive, stopping at the first success. A nil BrandResolver
// disables the brand-prefixed strategy, for callers that pass queries with
// the brand already resolved.
type Matcher struct {
	brands *BrandResolver
}

// NewMatcher creates a matcher. brands may be nil.
func NewMatcher(brands *BrandResolver) *Matcher {
	return &Matcher{brands: brands}
}

// Matches reports whether a flat target string (e.g. a track size code or
// part number) matches the query after normalization. "127-3807" matches
// "1273807".
func (m *Matcher) Matches(query, target string) bool {
	if target == "" {
		return false
	}
	// A query that normalizes away entirely (whitespace or punctuation
	// only) matches nothing, same as an empty query.
	normQuery := Normalize(query)
	if normQuery == "" {
		return false
	}
	return strings.Contains(Normalize(target), normQuery)
}

// MatchesRecord reports whether the query matches a structured record with
// separate make and model fields. Strategies, in order:
//
//  1. normalized substring against combined, make or model
//  2. literal lowercase substring against the combined string
//  3. brand-prefixed: resolve the first query word as a brand, require it in
//     make and the remaining words in model
//  4. all words present in the normalized combined string
func (m *Matcher) MatchesRecord(query, make, model string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	if make == "" && model == "" {
		return false
	}

	combined := strings.ToLower(make + " " + model)
	normMake := Normalize(make)
	normModel := Normalize(model)
	normCombined := Normalize(combined)

	loweredQuery := strings.ToLower(strings.TrimSpace(query))
	normQuery := Normalize(query)
	queryWords := strings.Fields(loweredQuery)

	// Strategy 1: normalized substring. Catches formatting differences like
	// "SVL75" vs "SVL 75".
	if strings.Contains(normCombined, normQuery) ||
		strings.Contains(normMake, normQuery) ||
		strings.Contains(normModel, normQuery) {
		return true
	}

	// Strategy 2: literal substring on the lowercased combined string.
	if strings.Contains(combined, loweredQuery) {
		return true
	}

	// Strategy 3: brand-prefixed. Tolerates "cat 320" against make "CAT",
	// model "320D" even when the brand token is an alias.
	if m.brands != nil && len(queryWords) > 0 {
		brand := m.brands.Resolve(queryWords[0])
		brandLower := strings.ToLower(brand)
		if strings.Contains(strings.ToLower(make), brandLower) ||
			strings.Contains(normMake, Normalize(brand)) {
			if len(queryWords) == 1 {
				return true
			}
			rest := strings.Join(queryWords[1:], " ")
			if strings.Contains(strings.ToLower(model), rest) ||
				strings.Contains(normModel, Normalize(rest)) {
				return true
			}
		}
	}

	// Strategy 4: all words present, in any order.
	if len(queryWords) > 1 {
		allFound := true
		for _, word := range queryWords {
			if !strings.Contains(normCombined, Normalize(word)) {
				allFound = false
				break
			}
		}
		if allFound {
			return true
		}

		rest := strings.Join(queryWords[1:], " ")
		if strings.Contains(normMake, Normalize(queryWords[0])) &&
			strings.Contains(normModel, Normalize(rest)) {
			return true
		}
	}

	return false
}
