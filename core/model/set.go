package model

import "sort"

// Set is an unordered collection of distinct strings used for skills,
// certifications and drone capabilities.
type Set map[string]struct{}

// NewSet returns a set holding the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts item into the set.
func (s Set) Add(item string) { s[item] = struct{}{} }

// Has reports whether item belongs to the set. A nil set holds nothing.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items.
func (s Set) Len() int { return len(s) }

// SubsetOf reports whether every item of s is also in other. The empty set is
// a subset of every set.
func (s Set) SubsetOf(other Set) bool {
	for it := range s {
		if !other.Has(it) {
			return false
		}
	}
	return true
}

// Missing returns the items of s absent from other, sorted.
func (s Set) Missing(other Set) []string {
	var out []string
	for it := range s {
		if !other.Has(it) {
			out = append(out, it)
		}
	}
	sort.Strings(out)
	return out
}

// Sorted returns the items in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
