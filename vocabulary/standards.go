package vocabulary

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

// Namespaces of the standard vocabularies used by the graph/axiom mapping.
//
// References:
// - RDF 1.1: https://www.w3.org/TR/rdf11-concepts/
// - OWL 2 mapping to RDF graphs: https://www.w3.org/TR/owl2-mapping-to-rdf/
// - XML Schema datatypes: https://www.w3.org/TR/xmlschema11-2/
const (
	RdfNamespace  = rdf.NS
	RdfsNamespace = rdfs.NS
	OwlNamespace  = "http://www.w3.org/2002/07/owl#"
	XsdNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF and RDFS terms, expanded from the prefixed forms registered by cayley's voc packages.
var (
	RdfType        = string(quad.IRI(rdf.Type).Full())
	RdfsSubClassOf = string(quad.IRI(rdfs.SubClassOf).Full())
)

const (
	// RdfsLiteral is the universal literal type, the top of the datatype signature.
	RdfsLiteral = RdfsNamespace + "Literal"

	// RdfsDatatype declares a datatype.
	RdfsDatatype = RdfsNamespace + "Datatype"
)

// OWL entity declarations and top entities.
const (
	OwlClass              = OwlNamespace + "Class"
	OwlObjectProperty     = OwlNamespace + "ObjectProperty"
	OwlDatatypeProperty   = OwlNamespace + "DatatypeProperty"
	OwlAnnotationProperty = OwlNamespace + "AnnotationProperty"
	OwlNamedIndividual    = OwlNamespace + "NamedIndividual"

	// OwlThing is the universal class, the top of the class signature.
	OwlThing = OwlNamespace + "Thing"

	// OwlTopObjectProperty is the universal object property.
	OwlTopObjectProperty = OwlNamespace + "topObjectProperty"

	// OwlTopDataProperty is the universal data property.
	OwlTopDataProperty = OwlNamespace + "topDataProperty"
)

// OWL restriction vocabulary.
const (
	OwlRestriction = OwlNamespace + "Restriction"
	OwlOnProperty  = OwlNamespace + "onProperty"
	OwlOnClass     = OwlNamespace + "onClass"
	OwlOnDataRange = OwlNamespace + "onDataRange"
	OwlHasSelf     = OwlNamespace + "hasSelf"

	// Unqualified cardinality predicates. A restriction using one of these carries no
	// filler triple, so its filler is implicitly the top of its signature kind.
	OwlCardinality    = OwlNamespace + "cardinality"
	OwlMinCardinality = OwlNamespace + "minCardinality"
	OwlMaxCardinality = OwlNamespace + "maxCardinality"

	// Qualified cardinality predicates.
	OwlQualifiedCardinality    = OwlNamespace + "qualifiedCardinality"
	OwlMinQualifiedCardinality = OwlNamespace + "minQualifiedCardinality"
	OwlMaxQualifiedCardinality = OwlNamespace + "maxQualifiedCardinality"
)

// XSD datatypes referenced by the mapping.
const (
	XsdString             = XsdNamespace + "string"
	XsdBoolean            = XsdNamespace + "boolean"
	XsdInteger            = XsdNamespace + "integer"
	XsdNonNegativeInteger = XsdNamespace + "nonNegativeInteger"
)

// CardinalityPredicates lists the three generic (unqualified) cardinality predicates in a
// fixed order: cardinality, max-cardinality, min-cardinality.
func CardinalityPredicates() []string {
	return []string{OwlCardinality, OwlMaxCardinality, OwlMinCardinality}
}

// QualifiedCardinalityPredicates lists the qualified cardinality predicates in the same order.
func QualifiedCardinalityPredicates() []string {
	return []string{OwlQualifiedCardinality, OwlMaxQualifiedCardinality, OwlMinQualifiedCardinality}
}
