package axiom

import (
	"fmt"

	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/vocabulary"
)

// EntityKind is the signature kind of a named entity
type EntityKind int

const (
	Class EntityKind = iota
	Datatype
	ObjectProperty
	DataProperty
	AnnotationProperty
	NamedIndividual
)

var entityKinds = []struct {
	name        string
	declaration string
}{
	Class:              {"Class", vocabulary.OwlClass},
	Datatype:           {"Datatype", vocabulary.RdfsDatatype},
	ObjectProperty:     {"ObjectProperty", vocabulary.OwlObjectProperty},
	DataProperty:       {"DataProperty", vocabulary.OwlDatatypeProperty},
	AnnotationProperty: {"AnnotationProperty", vocabulary.OwlAnnotationProperty},
	NamedIndividual:    {"NamedIndividual", vocabulary.OwlNamedIndividual},
}

func (k EntityKind) String() string {
	if int(k) < 0 || int(k) >= len(entityKinds) {
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
	return entityKinds[k].name
}

// DeclarationType returns the rdf:type object that declares an entity of this kind
func (k EntityKind) DeclarationType() string {
	if int(k) < 0 || int(k) >= len(entityKinds) {
		return ""
	}
	return entityKinds[k].declaration
}

// KindOfDeclaration maps a declaration type IRI back to its entity kind
func KindOfDeclaration(iri string) (EntityKind, bool) {
	for k, e := range entityKinds {
		if e.declaration == iri {
			return EntityKind(k), true
		}
	}
	return 0, false
}

// Entity is a named member of the signature
type Entity struct {
	Kind EntityKind `json:"kind"`
	IRI  string     `json:"iri"`
}

// NewEntity creates an entity
func NewEntity(kind EntityKind, iri string) Entity {
	return Entity{Kind: kind, IRI: iri}
}

// Term returns the entity as a graph resource
func (e Entity) Term() graph.Term { return graph.IRI(e.IRI) }

func (e Entity) String() string {
	return fmt.Sprintf("%s(<%s>)", e.Kind, e.IRI)
}

// IsTop reports whether the entity is the universal entity of its kind
func (e Entity) IsTop() bool {
	switch e.Kind {
	case Class:
		return e.IRI == vocabulary.OwlThing
	case Datatype:
		return e.IRI == vocabulary.RdfsLiteral
	case ObjectProperty:
		return e.IRI == vocabulary.OwlTopObjectProperty
	case DataProperty:
		return e.IRI == vocabulary.OwlTopDataProperty
	}
	return false
}

// DeclaredKinds returns the kinds an IRI is declared with in the graph.
// The built-in tops count as declared with their own kind.
func DeclaredKinds(r graph.Reader, iri string) []EntityKind {
	var kinds []EntityKind
	switch iri {
	case vocabulary.OwlThing:
		kinds = append(kinds, Class)
	case vocabulary.RdfsLiteral:
		kinds = append(kinds, Datatype)
	case vocabulary.OwlTopObjectProperty:
		kinds = append(kinds, ObjectProperty)
	case vocabulary.OwlTopDataProperty:
		kinds = append(kinds, DataProperty)
	}
	for _, t := range r.Objects(graph.IRI(iri), graph.IRI(vocabulary.RdfType)) {
		if !t.IsIRI() {
			continue
		}
		if k, ok := KindOfDeclaration(t.Value); ok && !hasKind(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// IsDeclared reports whether iri is declared as kind in the graph
func IsDeclared(r graph.Reader, iri string, kind EntityKind) bool {
	return hasKind(DeclaredKinds(r, iri), kind)
}

func hasKind(kinds []EntityKind, k EntityKind) bool {
	for _, existing := range kinds {
		if existing == k {
			return true
		}
	}
	return false
}
