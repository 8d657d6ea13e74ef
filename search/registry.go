package search

import (
	"slices"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
)

// Registry holds one searcher per kind. It is built once and read-only afterwards.
type Registry struct {
	searchers map[Kind]Searcher
}

// NewRegistry creates a registry; two searchers of the same kind are rejected
func NewRegistry(searchers ...Searcher) (*Registry, error) {
	r := &Registry{searchers: make(map[Kind]Searcher, len(searchers))}
	for _, s := range searchers {
		if s == nil {
			return nil, errors.InvalidArgument("Registry", "NewRegistry", "nil searcher")
		}
		if _, exists := r.searchers[s.Kind()]; exists {
			return nil, errors.InvalidArgument("Registry", "NewRegistry", "duplicate searcher for kind %s", s.Kind())
		}
		r.searchers[s.Kind()] = s
	}
	return r, nil
}

// DefaultRegistry returns a registry with all four top searchers
func DefaultRegistry() *Registry {
	r, _ := NewRegistry(ClassTop{}, DatatypeTop{}, ObjectPropertyTop{}, DataPropertyTop{})
	return r
}

// Get returns the searcher for kind
func (r *Registry) Get(kind Kind) (Searcher, bool) {
	s, ok := r.searchers[kind]
	return s, ok
}

// ByTop returns the searcher whose top entity is term
func (r *Registry) ByTop(term graph.Term) (Searcher, bool) {
	for _, s := range r.searchers {
		if s.TopEntity() == term {
			return s, true
		}
	}
	return nil, false
}

// Kinds returns the registered kinds in ascending order
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.searchers))
	for k := range r.searchers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Searchers returns the registered searchers ordered by kind
func (r *Registry) Searchers() []Searcher {
	out := make([]Searcher, 0, len(r.searchers))
	for _, k := range r.Kinds() {
		out = append(out, r.searchers[k])
	}
	return out
}
