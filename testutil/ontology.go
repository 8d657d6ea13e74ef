package testutil

import (
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/vocabulary"
)

// Ex is the namespace of the fixture ontology
const Ex = "http://example.org/"

// ExIRI returns a resource in the fixture namespace
func ExIRI(local string) graph.Term { return graph.IRI(Ex + local) }

// Blank labels used by the fixture ontology
const (
	AgeRestriction     = "age"
	FriendsRestriction = "friends"
	SelfRestriction    = "self"
	TopRestriction     = "top"
	Bob                = "bob"
)

func iri(s string) graph.Term { return graph.IRI(s) }

func count(n string) graph.Term {
	return graph.TypedLiteral(n, vocabulary.XsdNonNegativeInteger)
}

// Ontology returns the statements of a small ontology exercising every translation path:
//
//   - Person ⊑ Agent, Person ⊑ ≥1 hasAge (data), Person ⊑ ≤5 knows (object)
//   - Narcissist ⊑ likes some Self
//   - Agent ⊑ =3 topDataProperty
//   - alice : Person, _:bob : Person, knows(alice, _:bob)
func Ontology() []graph.Statement {
	typ := iri(vocabulary.RdfType)
	sub := iri(vocabulary.RdfsSubClassOf)
	onProperty := iri(vocabulary.OwlOnProperty)
	restriction := iri(vocabulary.OwlRestriction)

	st := graph.NewStatement
	age, friends := graph.Blank(AgeRestriction), graph.Blank(FriendsRestriction)
	self, top, bob := graph.Blank(SelfRestriction), graph.Blank(TopRestriction), graph.Blank(Bob)

	return []graph.Statement{
		st(ExIRI("Person"), typ, iri(vocabulary.OwlClass)),
		st(ExIRI("Agent"), typ, iri(vocabulary.OwlClass)),
		st(ExIRI("Narcissist"), typ, iri(vocabulary.OwlClass)),
		st(ExIRI("hasAge"), typ, iri(vocabulary.OwlDatatypeProperty)),
		st(ExIRI("knows"), typ, iri(vocabulary.OwlObjectProperty)),
		st(ExIRI("likes"), typ, iri(vocabulary.OwlObjectProperty)),

		st(ExIRI("Person"), sub, ExIRI("Agent")),

		st(ExIRI("Person"), sub, age),
		st(age, typ, restriction),
		st(age, onProperty, ExIRI("hasAge")),
		st(age, iri(vocabulary.OwlMinCardinality), count("1")),

		st(ExIRI("Person"), sub, friends),
		st(friends, typ, restriction),
		st(friends, onProperty, ExIRI("knows")),
		st(friends, iri(vocabulary.OwlMaxCardinality), count("5")),

		st(ExIRI("Narcissist"), sub, self),
		st(self, typ, restriction),
		st(self, onProperty, ExIRI("likes")),
		st(self, iri(vocabulary.OwlHasSelf), graph.TypedLiteral("true", vocabulary.XsdBoolean)),

		st(ExIRI("Agent"), sub, top),
		st(top, typ, restriction),
		st(top, onProperty, iri(vocabulary.OwlTopDataProperty)),
		st(top, iri(vocabulary.OwlCardinality), count("3")),

		st(ExIRI("alice"), typ, ExIRI("Person")),
		st(ExIRI("alice"), ExIRI("knows"), bob),
		st(bob, typ, ExIRI("Person")),
	}
}

// OntologyGraph returns a new graph holding Ontology()
func OntologyGraph() *graph.Graph {
	return graph.New(Ontology()...)
}

// OntologyNQuads is Ontology() serialized as N-Quads, in the same order
const OntologyNQuads = `<http://example.org/Person> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/Agent> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/Narcissist> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/hasAge> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#DatatypeProperty> .
<http://example.org/knows> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#ObjectProperty> .
<http://example.org/likes> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#ObjectProperty> .
<http://example.org/Person> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/Agent> .
<http://example.org/Person> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:age .
_:age <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> .
_:age <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/hasAge> .
_:age <http://www.w3.org/2002/07/owl#minCardinality> "1"^^<http://www.w3.org/2001/XMLSchema#nonNegativeInteger> .
<http://example.org/Person> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:friends .
_:friends <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> .
_:friends <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/knows> .
_:friends <http://www.w3.org/2002/07/owl#maxCardinality> "5"^^<http://www.w3.org/2001/XMLSchema#nonNegativeInteger> .
<http://example.org/Narcissist> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:self .
_:self <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> .
_:self <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/likes> .
_:self <http://www.w3.org/2002/07/owl#hasSelf> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .
<http://example.org/Agent> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:top .
_:top <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> .
_:top <http://www.w3.org/2002/07/owl#onProperty> <http://www.w3.org/2002/07/owl#topDataProperty> .
_:top <http://www.w3.org/2002/07/owl#cardinality> "3"^^<http://www.w3.org/2001/XMLSchema#nonNegativeInteger> .
<http://example.org/alice> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Person> .
<http://example.org/alice> <http://example.org/knows> _:bob .
_:bob <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Person> .
`
