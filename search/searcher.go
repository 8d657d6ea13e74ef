package search

import (
	"iter"
	"strings"

	"github.com/c360/ontograph/axiom"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/vocabulary"
)

// Kind is a top-level signature kind with a universal top entity
type Kind int

const (
	KindClass Kind = iota
	KindDatatype
	KindObjectProperty
	KindDataProperty
)

var kindNames = []string{
	KindClass:          "class",
	KindDatatype:       "datatype",
	KindObjectProperty: "object-property",
	KindDataProperty:   "data-property",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every searcher kind
func Kinds() []Kind {
	return []Kind{KindClass, KindDatatype, KindObjectProperty, KindDataProperty}
}

// ParseKind parses a kind name such as "datatype" or "object-property"
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return 0, errors.InvalidArgument("search", "ParseKind", "unknown searcher kind %q", s)
}

// Searcher recovers the cardinality axioms a graph encodes only implicitly for one
// signature kind. Implementations are immutable and safe to share between goroutines.
//
// The set of implementations is closed: ClassTop, DatatypeTop, ObjectPropertyTop and
// DataPropertyTop.
type Searcher interface {
	// Kind returns the signature kind this searcher covers
	Kind() Kind
	// TopEntity returns the resource acting as the top of the kind
	TopEntity() graph.Term
	// IsCardinalityRestriction reports whether the statement's subject is one of the
	// cardinality restriction subtypes this searcher recognizes
	IsCardinalityRestriction(r graph.Reader, st graph.Statement) bool
	// ListImplicitStatements yields the generic cardinality statements whose subject
	// passes IsCardinalityRestriction. The sequence is lazy and restartable.
	ListImplicitStatements(r graph.Reader) iter.Seq[graph.Statement]

	sealed()
}

// ClassTop covers owl:Thing: object cardinality restrictions, whose unqualified filler is
// the universal class
type ClassTop struct{}

func (ClassTop) Kind() Kind            { return KindClass }
func (ClassTop) TopEntity() graph.Term { return graph.IRI(vocabulary.OwlThing) }
func (ClassTop) sealed()               {}

func (s ClassTop) IsCardinalityRestriction(r graph.Reader, st graph.Statement) bool {
	k := axiom.ClassifyRestriction(r, st.Subject)
	return k.IsCardinality() && k.IsObject()
}

func (s ClassTop) ListImplicitStatements(r graph.Reader) iter.Seq[graph.Statement] {
	return listImplicit(s, r)
}

// DatatypeTop covers rdfs:Literal: data min, max and exact cardinality restrictions
type DatatypeTop struct{}

func (DatatypeTop) Kind() Kind            { return KindDatatype }
func (DatatypeTop) TopEntity() graph.Term { return graph.IRI(vocabulary.RdfsLiteral) }
func (DatatypeTop) sealed()               {}

func (s DatatypeTop) IsCardinalityRestriction(r graph.Reader, st graph.Statement) bool {
	switch axiom.ClassifyRestriction(r, st.Subject) {
	case axiom.DataMaxCardinality, axiom.DataMinCardinality, axiom.DataExactCardinality:
		return true
	}
	return false
}

func (s DatatypeTop) ListImplicitStatements(r graph.Reader) iter.Seq[graph.Statement] {
	return listImplicit(s, r)
}

// ObjectPropertyTop covers owl:topObjectProperty: object cardinality restrictions on it
type ObjectPropertyTop struct{}

func (ObjectPropertyTop) Kind() Kind            { return KindObjectProperty }
func (ObjectPropertyTop) TopEntity() graph.Term { return graph.IRI(vocabulary.OwlTopObjectProperty) }
func (ObjectPropertyTop) sealed()               {}

func (s ObjectPropertyTop) IsCardinalityRestriction(r graph.Reader, st graph.Statement) bool {
	return onTop(r, st.Subject, s.TopEntity()) && ClassTop{}.IsCardinalityRestriction(r, st)
}

func (s ObjectPropertyTop) ListImplicitStatements(r graph.Reader) iter.Seq[graph.Statement] {
	return listImplicit(s, r)
}

// DataPropertyTop covers owl:topDataProperty: data cardinality restrictions on it
type DataPropertyTop struct{}

func (DataPropertyTop) Kind() Kind            { return KindDataProperty }
func (DataPropertyTop) TopEntity() graph.Term { return graph.IRI(vocabulary.OwlTopDataProperty) }
func (DataPropertyTop) sealed()               {}

func (s DataPropertyTop) IsCardinalityRestriction(r graph.Reader, st graph.Statement) bool {
	return onTop(r, st.Subject, s.TopEntity()) && DatatypeTop{}.IsCardinalityRestriction(r, st)
}

func (s DataPropertyTop) ListImplicitStatements(r graph.Reader) iter.Seq[graph.Statement] {
	return listImplicit(s, r)
}

func onTop(r graph.Reader, node, top graph.Term) bool {
	prop, ok := axiom.OnProperty(r, node)
	return ok && prop == top
}

// listImplicit concatenates the statements of the three generic cardinality predicates
// (cardinality, max, min) and keeps those the searcher classifies as restrictions.
// Every iteration re-reads the graph.
func listImplicit(s Searcher, r graph.Reader) iter.Seq[graph.Statement] {
	preds := vocabulary.CardinalityPredicates()
	terms := make([]graph.Term, len(preds))
	for i, p := range preds {
		terms[i] = graph.IRI(p)
	}
	return graph.Filter(graph.ByPredicates(r, terms...), func(st graph.Statement) bool {
		return s.IsCardinalityRestriction(r, st)
	})
}
