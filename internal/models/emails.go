package models

import "slices"

// EmailSet is an unordered set of email addresses.
type EmailSet map[string]struct{}

// NewEmailSet returns a set holding the given addresses.
func NewEmailSet(emails ...string) EmailSet {
	s := make(EmailSet, len(emails))
	for _, e := range emails {
		s.Add(e)
	}
	return s
}

// Add inserts an address.
func (s EmailSet) Add(email string) {
	s[email] = struct{}{}
}

// Merge inserts every address of other.
func (s EmailSet) Merge(other EmailSet) {
	for e := range other {
		s[e] = struct{}{}
	}
}

// Contains reports whether the address is in the set.
func (s EmailSet) Contains(email string) bool {
	_, ok := s[email]
	return ok
}

// Len returns the number of addresses.
func (s EmailSet) Len() int {
	return len(s)
}

// Sorted returns the addresses in lexicographic order.
func (s EmailSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}
