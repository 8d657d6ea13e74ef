// Package vocabulary provides the RDF, RDFS, OWL and XSD terms used by the graph/axiom
// mapping, together with two fixed conventions of the structural layer.
//
// # Standard terms
//
// RDF and RDFS terms are expanded from the prefixed constants of cayley's voc packages
// (quad.IRI(rdf.Type).Full()); OWL and XSD terms are plain constants.
//
// # Special datatypes
//
// xsd:boolean and xsd:nonNegativeInteger are not part of the structural signature, yet
// they decide which restriction a node encodes:
//
//	vocabulary.SpecialDatatypeOf(vocabulary.XsdBoolean)            // SpecialHasSelf
//	vocabulary.SpecialDatatypeOf(vocabulary.XsdNonNegativeInteger) // SpecialCardinality
//	vocabulary.SpecialDatatypeOf(vocabulary.XsdString)             // SpecialNone
//
// # Error markers
//
// ErrorMarker names diagnostic resources substituted for broken fragments during
// translation. It is the only function in this package that fails.
package vocabulary
