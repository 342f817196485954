package flatten

import (
	"maps"
	"slices"
)

// Set is an immutable set of tuples. The zero value is the empty set.
// Operations return new sets and never modify their operands.
type Set struct {
	tuples map[string]Tuple
}

// NewSet builds a set from tuples, dropping duplicates.
func NewSet(tuples ...Tuple) Set {
	s := Set{tuples: make(map[string]Tuple, len(tuples))}
	for _, t := range tuples {
		s.tuples[t.id] = t
	}
	return s
}

func (s Set) Len() int {
	return len(s.tuples)
}

func (s Set) IsEmpty() bool {
	return len(s.tuples) == 0
}

func (s Set) Contains(t Tuple) bool {
	_, ok := s.tuples[t.id]
	return ok
}

// Tuples returns the members ordered by ID, so output is reproducible.
func (s Set) Tuples() []Tuple {
	ids := slices.Sorted(maps.Keys(s.tuples))
	out := make([]Tuple, len(ids))
	for i, id := range ids {
		out[i] = s.tuples[id]
	}
	return out
}

func (s Set) Union(other Set) Set {
	out := Set{tuples: make(map[string]Tuple, len(s.tuples)+len(other.tuples))}
	maps.Copy(out.tuples, s.tuples)
	maps.Copy(out.tuples, other.tuples)
	return out
}

func (s Set) Intersection(other Set) Set {
	small, large := s, other
	if len(large.tuples) < len(small.tuples) {
		small, large = large, small
	}

	out := Set{tuples: make(map[string]Tuple)}
	for id, t := range small.tuples {
		if _, ok := large.tuples[id]; ok {
			out.tuples[id] = t
		}
	}
	return out
}

// Difference returns the tuples of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := Set{tuples: make(map[string]Tuple)}
	for id, t := range s.tuples {
		if _, ok := other.tuples[id]; !ok {
			out.tuples[id] = t
		}
	}
	return out
}

// SymmetricDifference returns the tuples present in exactly one of the sets.
func (s Set) SymmetricDifference(other Set) Set {
	return s.Difference(other).Union(other.Difference(s))
}

func (s Set) IsSubset(other Set) bool {
	if len(s.tuples) > len(other.tuples) {
		return false
	}
	for id := range s.tuples {
		if _, ok := other.tuples[id]; !ok {
			return false
		}
	}
	return true
}

func (s Set) Equal(other Set) bool {
	return len(s.tuples) == len(other.tuples) && s.IsSubset(other)
}
