package matching

import (
	"sort"
	"strings"
)

// BrandResolver maps free-text brand tokens to the canonical brand spelling
// used in catalog records. The alias table is injected at construction time
// and never mutated afterwards.
type BrandResolver struct {
	aliases map[string]string
}

// NewBrandResolver creates a resolver over the given alias table. Keys are
// expected to be lowercase and trimmed; values are the exact canonical
// spelling stored in the catalog.
func NewBrandResolver(aliases map[string]string) *BrandResolver {
	return &BrandResolver{aliases: aliases}
}

// DefaultBrandAliases returns the built-in alias table for the equipment
// brands carried in the catalog.
func DefaultBrandAliases() map[string]string {
	return map[string]string{
		"cat":         "CAT",
		"caterpillar": "CAT",
		"bobcat":      "Bobcat",
		"kubota":      "Kubota",
		"john deere":  "John Deere",
		"johndeere":   "John Deere",
		"deere":       "John Deere",
		"jd":          "John Deere",
		"case":        "CASE",
		"asv":         "ASV",
		"takeuchi":    "Takeuchi",
		"new holland": "New Holland",
		"newholland":  "New Holland",
		"nh":          "New Holland",
		"gehl":        "Gehl",
		"mustang":     "Mustang",
		"terex":       "Terex",
		"yanmar":      "Yanmar",
		"komatsu":     "Komatsu",
		"ihi":         "IHI",
		"jcb":         "JCB",
		"volvo":       "Volvo",
		"vermeer":     "Vermeer",
		"morooka":     "Morooka",
	}
}

// Resolve maps a user-typed brand token to its canonical spelling. On a
// lookup miss the input is returned unchanged, original casing included, so
// callers can feed the result back into case-sensitive comparisons.
func (r *BrandResolver) Resolve(input string) string {
	if input == "" {
		return input
	}

	key := strings.ToLower(strings.TrimSpace(input))
	if canonical, ok := r.aliases[key]; ok {
		return canonical
	}
	return input
}

// Variations returns the set of known spellings for a brand: the input as
// given, its lower-trimmed form, and every alias whose canonical value
// matches the input case-insensitively.
func (r *BrandResolver) Variations(brand string) map[string]struct{} {
	variations := map[string]struct{}{}
	if brand == "" {
		return variations
	}

	lowered := strings.ToLower(strings.TrimSpace(brand))
	variations[brand] = struct{}{}
	variations[lowered] = struct{}{}

	for alias, canonical := range r.aliases {
		if strings.EqualFold(canonical, lowered) {
			variations[alias] = struct{}{}
		}
	}

	return variations
}

// Canonicals returns the distinct canonical brand names in the alias table,
// sorted alphabetically.
func (r *BrandResolver) Canonicals() []string {
	seen := map[string]struct{}{}
	for _, canonical := range r.aliases {
		seen[canonical] = struct{}{}
	}

	brands := make([]string, 0, len(seen))
	for brand := range seen {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return brands
}
