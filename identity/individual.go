package identity

import (
	"fmt"
)

// AnonymousIndividual is the structural-model counterpart of a blank node.
// It wraps exactly one AnonymousID.
type AnonymousIndividual struct {
	id AnonymousID
}

// NewAnonymousIndividual wraps an identity
func NewAnonymousIndividual(id AnonymousID) AnonymousIndividual {
	return AnonymousIndividual{id: id}
}

// ToAnonymousIndividual converts any value denoting an anonymous node.
//
// Sources carrying a native label (AnonymousIndividual, AnonymousID, blank graph.Term,
// quad.BNode or any NodeRef) reuse it without label synthesis. Otherwise the label is
// derived deterministically from the source's string identifier: the string itself, its
// String() form, or fmt's %v rendering. It never fails.
func ToAnonymousIndividual(source any) AnonymousIndividual {
	if label, ok := labelOf(source); ok {
		return AnonymousIndividual{id: AnonymousID{label: label}}
	}
	if isNilPointer(source) {
		return AnonymousIndividual{id: DeriveID(fmt.Sprintf("%v", source))}
	}
	switch s := source.(type) {
	case string:
		return AnonymousIndividual{id: DeriveID(s)}
	case fmt.Stringer:
		return AnonymousIndividual{id: DeriveID(s.String())}
	default:
		return AnonymousIndividual{id: DeriveID(fmt.Sprintf("%v", source))}
	}
}

// ID returns the wrapped identity
func (a AnonymousIndividual) ID() AnonymousID { return a.id }

// BlankLabel implements NodeRef
func (a AnonymousIndividual) BlankLabel() (string, bool) { return a.id.BlankLabel() }

// Hash is consistent with Equal: equal individuals hash equally
func (a AnonymousIndividual) Hash() uint64 { return a.id.Hash() }

// String renders the individual as its blank node
func (a AnonymousIndividual) String() string { return a.id.String() }

// Equal reports whether other denotes the same anonymous node.
//
// Equality is not limited to AnonymousIndividual: any value that can independently
// produce the same blank label (AnonymousID, blank graph.Term, quad.BNode, NodeRef) is
// equal. The comparison extracts a label from both sides the same way, so it is
// symmetric whichever side is the receiver.
func (a AnonymousIndividual) Equal(other any) bool {
	return Same(a, other)
}

// Same reports whether a and b denote the same anonymous node.
// Values without a native blank label are never equal to anything.
func Same(a, b any) bool {
	la, ok := labelOf(a)
	if !ok {
		return false
	}
	lb, ok := labelOf(b)
	return ok && la == lb
}
