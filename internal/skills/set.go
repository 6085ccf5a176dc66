// Package skills normalizes heterogeneous skill representations into canonical
// token sets and measures the overlap between them.
package skills

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Set is a set of canonical skill tokens that remembers first-insertion order,
// so derived sequences (missing and overlap skills) are deterministic.
// The zero value is not usable; create sets with NewSet.
type Set struct {
	items []string
	index map[string]struct{}
}

// NewSet creates a set from the given tokens, canonicalizing each one.
func NewSet(tokens ...string) *Set {
	s := &Set{
		items: make([]string, 0, len(tokens)),
		index: make(map[string]struct{}, len(tokens)),
	}
	for _, token := range tokens {
		s.Add(token)
	}
	return s
}

// Canonical lowercases and trims a skill token. An empty result means the
// token carries no skill.
func Canonical(token string) string {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ""
	}
	return cases.Lower(language.Und).String(trimmed)
}

// Add inserts a token and reports whether it was new. Empty tokens are dropped.
func (s *Set) Add(token string) bool {
	canonical := Canonical(token)
	if canonical == "" {
		return false
	}
	if _, exists := s.index[canonical]; exists {
		return false
	}
	s.index[canonical] = struct{}{}
	s.items = append(s.items, canonical)
	return true
}

// Has reports whether the canonical form of token is in the set.
func (s *Set) Has(token string) bool {
	_, ok := s.index[Canonical(token)]
	return ok
}

// Len returns the number of tokens.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns a copy of the tokens in insertion order.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Union returns a new set with s's tokens followed by other's new tokens.
func (s *Set) Union(other *Set) *Set {
	out := NewSet(s.items...)
	for _, token := range other.items {
		out.Add(token)
	}
	return out
}

// Intersect returns tokens of s that are also in other, in s's order.
func (s *Set) Intersect(other *Set) *Set {
	out := NewSet()
	for _, token := range s.items {
		if _, ok := other.index[token]; ok {
			out.Add(token)
		}
	}
	return out
}

// Difference returns tokens of s that are not in other, in s's order.
func (s *Set) Difference(other *Set) *Set {
	out := NewSet()
	for _, token := range s.items {
		if _, ok := other.index[token]; !ok {
			out.Add(token)
		}
	}
	return out
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b *Set) float64 {
	intersection := 0
	for _, token := range a.items {
		if _, ok := b.index[token]; ok {
			intersection++
		}
	}
	union := a.Len() + b.Len() - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
