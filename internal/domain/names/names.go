// Package names holds the key used to join players across sources.
//
// The sources share no stable player identifier, so every cross-source match
// (catalog to draft picks, user-team detection) goes through Key. The
// normalization is lossy and best-effort: it lowercases and trims, nothing
// more. Spelling differences between sources are not reconciled.
package names

import "strings"

// Key is a normalized player or team name.
type Key string

// Normalize builds the reconciliation key for a display name.
func Normalize(name string) Key {
	return Key(strings.ToLower(strings.TrimSpace(name)))
}

// Empty reports whether the key carries no name.
func (k Key) Empty() bool { return k == "" }

// Equal compares two display names by key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether name contains fragment by key. An empty fragment
// never matches.
func Contains(name, fragment string) bool {
	f := Normalize(fragment)
	if f.Empty() {
		return false
	}
	return strings.Contains(string(Normalize(name)), string(f))
}

// Set is a set of keys.
type Set map[Key]struct{}

// NewSet builds a set from display names, dropping empty ones.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts a display name. Empty names are ignored.
func (s Set) Add(name string) {
	if k := Normalize(name); !k.Empty() {
		s[k] = struct{}{}
	}
}

// Has reports whether a display name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[Normalize(name)]
	return ok
}
