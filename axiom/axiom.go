package axiom

import (
	"fmt"
	"strings"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/identity"
	"github.com/c360/ontograph/vocabulary"
)

const (
	topClass    = vocabulary.OwlThing
	topDatatype = vocabulary.RdfsLiteral
)

// Kind identifies an axiom type
type Kind int

const (
	KindDeclaration Kind = iota
	KindSubClassOf
	KindClassAssertion
	KindObjectPropertyAssertion
)

var kindNames = []string{
	KindDeclaration:             "Declaration",
	KindSubClassOf:              "SubClassOf",
	KindClassAssertion:          "ClassAssertion",
	KindObjectPropertyAssertion: "ObjectPropertyAssertion",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every axiom kind in declaration order
func Kinds() []Kind {
	return []Kind{KindDeclaration, KindSubClassOf, KindClassAssertion, KindObjectPropertyAssertion}
}

// ParseKind parses an axiom kind by name, case-insensitively
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return 0, errors.InvalidArgument("axiom", "ParseKind", "unknown axiom kind %q", s)
}

// Axiom is a structural statement recovered from the graph
type Axiom interface {
	Kind() Kind
	// Key identifies the axiom by content; two axioms with equal keys are the same axiom
	Key() string
	// Signature lists the entities the axiom mentions explicitly
	Signature() []Entity
	String() string
}

// Individual is either a named individual or an anonymous one
type Individual struct {
	IRI       string
	Anonymous identity.AnonymousIndividual
}

// NamedIndividualOf creates a named individual
func NamedIndividualOf(iri string) Individual { return Individual{IRI: iri} }

// AnonymousIndividualOf wraps an anonymous individual
func AnonymousIndividualOf(a identity.AnonymousIndividual) Individual {
	return Individual{Anonymous: a}
}

// IsAnonymous reports whether the individual is a blank node
func (i Individual) IsAnonymous() bool { return i.IRI == "" }

func (i Individual) String() string {
	if i.IsAnonymous() {
		return i.Anonymous.String()
	}
	return "<" + i.IRI + ">"
}

// Term returns the individual as a graph resource
func (i Individual) Term() graph.Term {
	if i.IsAnonymous() {
		return i.Anonymous.ID().Term()
	}
	return graph.IRI(i.IRI)
}

func (i Individual) signature() []Entity {
	if i.IsAnonymous() {
		return nil
	}
	return []Entity{{Kind: NamedIndividual, IRI: i.IRI}}
}

// Declaration declares an entity
type Declaration struct {
	Entity Entity
}

func (d Declaration) Kind() Kind          { return KindDeclaration }
func (d Declaration) Key() string         { return "Declaration(" + d.Entity.String() + ")" }
func (d Declaration) Signature() []Entity { return []Entity{d.Entity} }
func (d Declaration) String() string      { return d.Key() }

// SubClassOf states that every instance of Sub is an instance of Super
type SubClassOf struct {
	Sub   ClassExpression
	Super ClassExpression
}

func (s SubClassOf) Kind() Kind { return KindSubClassOf }
func (s SubClassOf) Key() string {
	return fmt.Sprintf("SubClassOf(%s %s)", s.Sub.Key(), s.Super.Key())
}
func (s SubClassOf) Signature() []Entity {
	return append(s.Sub.Signature(), s.Super.Signature()...)
}
func (s SubClassOf) String() string { return s.Key() }

// ClassAssertion states that Individual is an instance of Class
type ClassAssertion struct {
	Class      ClassExpression
	Individual Individual
}

func (c ClassAssertion) Kind() Kind { return KindClassAssertion }
func (c ClassAssertion) Key() string {
	return fmt.Sprintf("ClassAssertion(%s %s)", c.Class.Key(), c.Individual)
}
func (c ClassAssertion) Signature() []Entity {
	return append(c.Class.Signature(), c.Individual.signature()...)
}
func (c ClassAssertion) String() string { return c.Key() }

// ObjectPropertyAssertion relates two individuals through an object property
type ObjectPropertyAssertion struct {
	Property Entity
	Subject  Individual
	Object   Individual
}

func (o ObjectPropertyAssertion) Kind() Kind { return KindObjectPropertyAssertion }
func (o ObjectPropertyAssertion) Key() string {
	return fmt.Sprintf("ObjectPropertyAssertion(<%s> %s %s)", o.Property.IRI, o.Subject, o.Object)
}
func (o ObjectPropertyAssertion) Signature() []Entity {
	sig := []Entity{o.Property}
	sig = append(sig, o.Subject.signature()...)
	return append(sig, o.Object.signature()...)
}
func (o ObjectPropertyAssertion) String() string { return o.Key() }

// Mentions reports whether e is part of the axiom's explicit signature
func Mentions(a Axiom, e Entity) bool {
	for _, s := range a.Signature() {
		if s == e {
			return true
		}
	}
	return false
}
