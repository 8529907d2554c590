package matching

import "strings"

// FilterRecords returns the elements of items whose make and model fields
// match the query, in the original order. An empty query or empty items
// returns items unchanged. Extractor functions obtain the comparison fields
// from each element; an empty extraction is treated as an empty field.
func FilterRecords[T any](m *Matcher, query string, items []T, getMake, getModel func(T) string) []T {
	if strings.TrimSpace(query) == "" || len(items) == 0 {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if m.MatchesRecord(query, getMake(item), getModel(item)) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FilterByField returns the elements of items whose single extracted field
// matches the query as a flat string, in the original order. An empty query
// or empty items returns items unchanged.
func FilterByField[T any](m *Matcher, query string, items []T, getField func(T) string) []T {
	if strings.TrimSpace(query) == "" || len(items) == 0 {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if m.Matches(query, getField(item)) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
