package moderation

import (
	"sort"
	"strings"
)

// Filter reports whether text contains a forbidden term.
// Matching is plain substring containment on lower-cased text: no word
// boundaries and no per-language lists, so a term embedded in an innocent
// word matches too.
type Filter struct {
	terms []string
}

// NewFilter builds a filter from terms; terms are lower-cased and de-duplicated
func NewFilter(terms []string) *Filter {
	seen := make(map[string]struct{}, len(terms))
	normalized := make([]string, 0, len(terms))

	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		normalized = append(normalized, term)
	}
	sort.Strings(normalized)

	return &Filter{terms: normalized}
}

// ContainsForbidden reports true if any term occurs in text
func (f *Filter) ContainsForbidden(text string) bool {
	_, ok := f.Match(text)
	return ok
}

// Match returns the first matching term
func (f *Filter) Match(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lowered := strings.ToLower(text)
	for _, term := range f.terms {
		if strings.Contains(lowered, term) {
			return term, true
		}
	}
	return "", false
}

// Terms returns a copy of the normalized term list
func (f *Filter) Terms() []string {
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}
