package identity

import (
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
)

// BlankSource is the part of a graph the registry reads
type BlankSource interface {
	HasBlank(label string) bool
	Closed() bool
}

// Registry is the identity view over one graph.
//
// It holds no mutable state of its own: which labels resolve is entirely a function of
// the graph at call time, so it needs no locking beyond what guards the graph.
type Registry struct {
	source BlankSource
}

// NewRegistry binds a registry to a graph
func NewRegistry(source BlankSource) *Registry {
	return &Registry{source: source}
}

// Individual converts any anonymous-node source; see ToAnonymousIndividual
func (r *Registry) Individual(source any) AnonymousIndividual {
	return ToAnonymousIndividual(source)
}

// Resolve returns the individual for a label that occurs in the graph.
// It fails with ErrMissingIdentity when the graph was released or the label is unknown,
// and with ErrInvalidArgument when the label is empty.
func (r *Registry) Resolve(label string) (AnonymousIndividual, error) {
	id, err := ParseID(label)
	if err != nil {
		return AnonymousIndividual{}, err
	}
	if r.source == nil || r.source.Closed() || !r.source.HasBlank(id.label) {
		return AnonymousIndividual{}, errors.MissingIdentity("Registry", "Resolve", id.label)
	}
	return AnonymousIndividual{id: id}, nil
}

// ResolveTerm resolves a blank graph term. Non-blank terms fail with ErrInvalidArgument.
func (r *Registry) ResolveTerm(t graph.Term) (AnonymousIndividual, error) {
	label, ok := t.BlankLabel()
	if !ok {
		return AnonymousIndividual{}, errors.InvalidArgument("Registry", "ResolveTerm", "%s is not a blank node", t)
	}
	return r.Resolve(label)
}

// LabelLister is implemented by graphs able to enumerate their blank labels
type LabelLister interface {
	BlankLabels() []string
}

// Individuals returns one individual per anonymous node of the graph, in first-seen order
func (r *Registry) Individuals() []AnonymousIndividual {
	lister, ok := r.source.(LabelLister)
	if !ok || r.source.Closed() {
		return nil
	}
	labels := lister.BlankLabels()
	out := make([]AnonymousIndividual, 0, len(labels))
	for _, label := range labels {
		out = append(out, AnonymousIndividual{id: AnonymousID{label: label}})
	}
	return out
}
