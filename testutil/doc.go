// Package testutil provides shared fixtures for ontograph tests.
//
// Ontology / OntologyGraph / OntologyNQuads describe one small ontology, in statement and
// N-Quads form, that covers every translation path: named and anonymous individuals,
// object and data cardinality restrictions, a has-self restriction and a restriction on
// the top data property.
//
// StartNATS runs a JetStream-enabled NATS server in a container for the storage
// integration tests; it needs Docker and is only called from tests behind the
// integration build tag.
package testutil
