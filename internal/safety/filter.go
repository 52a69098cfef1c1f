package safety

import "strings"

// BlockedWords is the built-in blocklist. Matching is case-insensitive
// substring matching, checked in this order.
var BlockedWords = []string{
	"bomb",
	"weapon",
	"kill",
	"suicide",
	"explode",
	"terror",
	"drugs",
}

// Verdict is the result of checking one piece of text.
type Verdict struct {
	Allowed     bool
	MatchedTerm string
}

// Filter flags text that contains a blocked term.
type Filter struct {
	terms []string
}

// Default returns a filter using only BlockedWords.
func Default() *Filter {
	return New()
}

// New creates a filter from BlockedWords plus any extra terms. Extra terms
// are lower-cased, blank and duplicate entries are dropped.
func New(extra ...string) *Filter {
	terms := make([]string, 0, len(BlockedWords)+len(extra))
	seen := make(map[string]bool, cap(terms))

	for _, t := range append(append([]string{}, BlockedWords...), extra...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}

	return &Filter{terms: terms}
}

// Check reports whether text is free of blocked terms. Empty text is allowed.
func (f *Filter) Check(text string) Verdict {
	lower := strings.ToLower(text)
	for _, term := range f.terms {
		if strings.Contains(lower, term) {
			return Verdict{Allowed: false, MatchedTerm: term}
		}
	}
	return Verdict{Allowed: true}
}

// Terms returns a copy of the active blocklist.
func (f *Filter) Terms() []string {
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}
