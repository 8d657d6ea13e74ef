package axiom

import (
	"iter"
)

// Set is an insertion-ordered set of axioms compared by Key.
// It merges directly translated axioms with those recovered from implicit statements.
type Set struct {
	axioms []Axiom
	keys   map[string]struct{}
}

// NewSet creates a set holding the given axioms
func NewSet(axioms ...Axiom) *Set {
	s := &Set{keys: make(map[string]struct{})}
	s.Add(axioms...)
	return s
}

// Add inserts axioms not already present and returns how many were new
func (s *Set) Add(axioms ...Axiom) int {
	added := 0
	for _, a := range axioms {
		if a == nil {
			continue
		}
		key := a.Key()
		if _, ok := s.keys[key]; ok {
			continue
		}
		s.keys[key] = struct{}{}
		s.axioms = append(s.axioms, a)
		added++
	}
	return added
}

// Contains reports whether an axiom with the same key is present
func (s *Set) Contains(a Axiom) bool {
	_, ok := s.keys[a.Key()]
	return ok
}

// Len returns the number of axioms
func (s *Set) Len() int { return len(s.axioms) }

// Axioms returns a copy of the axioms in insertion order
func (s *Set) Axioms() []Axiom {
	out := make([]Axiom, len(s.axioms))
	copy(out, s.axioms)
	return out
}

// All iterates over the axioms in insertion order
func (s *Set) All() iter.Seq[Axiom] {
	return func(yield func(Axiom) bool) {
		for _, a := range s.axioms {
			if !yield(a) {
				return
			}
		}
	}
}
