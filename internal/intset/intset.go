// Package intset implements a compact, sorted int64 array — the packed
// leaf structure spec.md §3 calls "compact inline-int-set" and assumes
// exists. Membership is O(log n) via binary search; insertion keeps the
// array sorted so iteration order is deterministic and random sampling is
// exactly uniform (spec.md §9's "random element uniformity" note).
package intset

import "sort"

// Set is a sorted, deduplicated slice of int64. The zero value is an
// empty, ready-to-use set.
type Set struct {
	vals []int64
}

// New returns an empty intset.
func New() *Set { return &Set{} }

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.vals) }

// search returns the index at which v is found, or where it would be
// inserted to keep vals sorted, plus whether it was found.
func (s *Set) search(v int64) (int, bool) {
	i := sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= v })
	return i, i < len(s.vals) && s.vals[i] == v
}

// Contains reports whether v is a member.
func (s *Set) Contains(v int64) bool {
	_, found := s.search(v)
	return found
}

// Add inserts v, returning true if it was newly added.
func (s *Set) Add(v int64) bool {
	i, found := s.search(v)
	if found {
		return false
	}
	s.vals = append(s.vals, 0)
	copy(s.vals[i+1:], s.vals[i:])
	s.vals[i] = v
	return true
}

// Remove deletes v, returning true if it was present.
func (s *Set) Remove(v int64) bool {
	i, found := s.search(v)
	if !found {
		return false
	}
	s.vals = append(s.vals[:i], s.vals[i+1:]...)
	return true
}

// At returns the element at the given sorted index. Used by Random, which
// picks an index uniformly and defers to At — exactly uniform, unlike the
// hash-table case (see hashtable.Table.Random).
func (s *Set) At(i int) int64 { return s.vals[i] }

// All returns the full sorted slice of elements. Callers must not mutate
// the returned slice; it is the set's live backing array.
func (s *Set) All() []int64 { return s.vals }
