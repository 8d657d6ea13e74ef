// Package axiom is the structural view of a statement graph.
//
// It models the entities of the signature, the class expressions needed by the
// top-entity searchers (named classes, cardinality restrictions and has-self
// restrictions) and four axiom types: Declaration, SubClassOf, ClassAssertion and
// ObjectPropertyAssertion.
//
// ClassifyRestriction decides which restriction subtype a node encodes from the graph
// around it: the cardinality predicate gives the form (exact, max, min) and the side
// (object or data) comes from owl:onClass / owl:onDataRange or from how the restricted
// property is declared. Literal datatypes go through vocabulary.SpecialDatatypeOf, so
// xsd:boolean marks a has-self value and xsd:nonNegativeInteger a cardinality.
//
// Translator produces axioms on demand:
//
//	tr := axiom.NewTranslator(axiom.WithCache(c), axiom.WithLogger(logger))
//	subs, err := tr.Translate(g, axiom.KindSubClassOf)
//
// Axiom keys are content-based, so Set merges direct and implicit results without
// duplicates.
package axiom
