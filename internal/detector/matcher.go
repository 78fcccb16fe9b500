package detector

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// termMatcher answers "which of these literals occur in s" in one pass over s.
type termMatcher struct {
	automaton aho.AhoCorasick
	terms     []string
}

func newTermMatcher(terms []string) *termMatcher {
	t := make([]string, len(terms))
	copy(t, terms)

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	return &termMatcher{
		automaton: builder.Build(t),
		terms:     t,
	}
}

// hits returns a set of term indexes found in s, overlapping matches included.
func (m *termMatcher) hits(s string) map[int]bool {
	found := make(map[int]bool)
	if len(m.terms) == 0 || s == "" {
		return found
	}

	iter := m.automaton.IterOverlappingByte([]byte(s))
	for next := iter.Next(); next != nil; next = iter.Next() {
		found[next.Pattern()] = true
	}
	return found
}
