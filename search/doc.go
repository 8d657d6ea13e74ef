// Package search recovers axioms a graph encodes only implicitly.
//
// A cardinality restriction such as
//
//	_:r owl:onProperty ex:hasAge .
//	_:r owl:minCardinality "1"^^xsd:nonNegativeInteger .
//
// carries no triple naming its exact subtype; whether it is a data or an object
// restriction follows from the property. Each top-level signature kind has a Searcher
// bound to its top entity (owl:Thing, rdfs:Literal, owl:topObjectProperty,
// owl:topDataProperty) that scans the generic cardinality predicates through
// graph.ByPredicate and keeps the statements whose subject it recognizes:
//
//	s, _ := search.DefaultRegistry().Get(search.KindDatatype)
//	for st := range s.ListImplicitStatements(g) {
//		...
//	}
//
// Searchers are stateless values and may be shared freely.
package search
