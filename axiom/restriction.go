package axiom

import (
	"strconv"

	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/vocabulary"
)

// RestrictionKind is the structural subtype a restriction node encodes
type RestrictionKind int

const (
	RestrictionNone RestrictionKind = iota
	ObjectMinCardinality
	ObjectMaxCardinality
	ObjectExactCardinality
	DataMinCardinality
	DataMaxCardinality
	DataExactCardinality
	ObjectHasSelf
)

func (k RestrictionKind) String() string {
	switch k {
	case ObjectMinCardinality:
		return "ObjectMinCardinality"
	case ObjectMaxCardinality:
		return "ObjectMaxCardinality"
	case ObjectExactCardinality:
		return "ObjectExactCardinality"
	case DataMinCardinality:
		return "DataMinCardinality"
	case DataMaxCardinality:
		return "DataMaxCardinality"
	case DataExactCardinality:
		return "DataExactCardinality"
	case ObjectHasSelf:
		return "ObjectHasSelf"
	default:
		return "None"
	}
}

// IsCardinality reports whether the kind is one of the six cardinality restrictions
func (k RestrictionKind) IsCardinality() bool {
	return k >= ObjectMinCardinality && k <= DataExactCardinality
}

// IsData reports whether the kind restricts a data property
func (k RestrictionKind) IsData() bool {
	return k >= DataMinCardinality && k <= DataExactCardinality
}

// IsObject reports whether the kind restricts an object property
func (k RestrictionKind) IsObject() bool {
	return (k >= ObjectMinCardinality && k <= ObjectExactCardinality) || k == ObjectHasSelf
}

type form int

const (
	formExact form = iota
	formMax
	formMin
)

type side int

const (
	sideNone side = iota
	sideObject
	sideData
)

var cardinalityKinds = map[side][3]RestrictionKind{
	sideObject: {ObjectExactCardinality, ObjectMaxCardinality, ObjectMinCardinality},
	sideData:   {DataExactCardinality, DataMaxCardinality, DataMinCardinality},
}

type cardinalityPredicate struct {
	iri       string
	form      form
	qualified bool
}

// cardinalityPredicates pairs every cardinality predicate with its form, unqualified
// predicates first.
var cardinalityPredicates = func() []cardinalityPredicate {
	var out []cardinalityPredicate
	for i, iri := range vocabulary.CardinalityPredicates() {
		out = append(out, cardinalityPredicate{iri: iri, form: form(i)})
	}
	for i, iri := range vocabulary.QualifiedCardinalityPredicates() {
		out = append(out, cardinalityPredicate{iri: iri, form: form(i), qualified: true})
	}
	return out
}()

// Cardinality holds the bound read from a restriction node
type Cardinality struct {
	Predicate string
	Value     uint64
	Qualified bool
	form      form
}

// CardinalityOf returns the first well-formed cardinality bound on node.
func CardinalityOf(r graph.Reader, node graph.Term) (Cardinality, bool) {
	for _, p := range cardinalityPredicates {
		for _, o := range r.Objects(node, graph.IRI(p.iri)) {
			if n, ok := cardinalityValue(o); ok {
				return Cardinality{Predicate: p.iri, Value: n, Qualified: p.qualified, form: p.form}, true
			}
		}
	}
	return Cardinality{}, false
}

// cardinalityValue accepts plain literals, xsd:integer and the datatype that the special
// mapping reserves for cardinality restrictions (xsd:nonNegativeInteger). xsd:string is
// accepted because RDF 1.1 gives every plain literal that datatype, and some serializers
// write it out explicitly.
func cardinalityValue(t graph.Term) (uint64, bool) {
	if !t.IsLiteral() || t.Lang != "" {
		return 0, false
	}
	switch {
	case t.Datatype == "", t.Datatype == vocabulary.XsdInteger, t.Datatype == vocabulary.XsdString:
	case vocabulary.SpecialDatatypeOf(t.Datatype) == vocabulary.SpecialCardinality:
	default:
		return 0, false
	}
	n, err := strconv.ParseUint(t.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// hasSelfValue accepts "true"/"1" as plain literals or under the datatype the special
// mapping reserves for has-self restrictions (xsd:boolean).
func hasSelfValue(t graph.Term) bool {
	if !t.IsLiteral() {
		return false
	}
	if t.Datatype != "" && vocabulary.SpecialDatatypeOf(t.Datatype) != vocabulary.SpecialHasSelf {
		return false
	}
	return t.Value == "true" || t.Value == "1"
}

// OnProperty returns the restricted property of node, if any
func OnProperty(r graph.Reader, node graph.Term) (graph.Term, bool) {
	for _, t := range r.Objects(node, graph.IRI(vocabulary.OwlOnProperty)) {
		if t.IsResource() {
			return t, true
		}
	}
	return graph.Any, false
}

// ClassifyRestriction decides which restriction subtype node encodes.
//
// The side (object or data) comes from an explicit filler predicate first
// (owl:onClass / owl:onDataRange), then from the restricted property: a top property or
// a property declared in the graph. Anything that cannot be decided yields RestrictionNone.
func ClassifyRestriction(r graph.Reader, node graph.Term) RestrictionKind {
	if !node.IsResource() {
		return RestrictionNone
	}

	for _, o := range r.Objects(node, graph.IRI(vocabulary.OwlHasSelf)) {
		if hasSelfValue(o) {
			return ObjectHasSelf
		}
	}

	card, ok := CardinalityOf(r, node)
	if !ok {
		return RestrictionNone
	}
	s := restrictionSide(r, node, card.Qualified)
	if s == sideNone {
		return RestrictionNone
	}
	return cardinalityKinds[s][card.form]
}

func restrictionSide(r graph.Reader, node graph.Term, qualified bool) side {
	if qualified {
		if len(r.Objects(node, graph.IRI(vocabulary.OwlOnDataRange))) > 0 {
			return sideData
		}
		if len(r.Objects(node, graph.IRI(vocabulary.OwlOnClass))) > 0 {
			return sideObject
		}
	}

	prop, ok := OnProperty(r, node)
	if !ok || !prop.IsIRI() {
		return sideNone
	}
	kinds := DeclaredKinds(r, prop.Value)
	isData := hasKind(kinds, DataProperty)
	isObject := hasKind(kinds, ObjectProperty)
	switch {
	case isData && !isObject:
		return sideData
	case isObject && !isData:
		return sideObject
	}
	return sideNone
}
