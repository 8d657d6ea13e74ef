// Package ontograph translates between RDF-style triple graphs and OWL 2
// axioms.
//
// A graph is a set of subject-predicate-object statements whose nodes are
// IRIs, literals or blank nodes. The translator reads such a graph and
// produces the OWL 2 axioms it encodes: declarations, class and property
// axioms, assertions and annotations. Blank-node structures such as
// restrictions, boolean class expressions and RDF lists are resolved into
// nested expressions, and the statements they use are reported as consumed
// so that callers can tell which triples were explained.
//
// # Packages
//
//   - vocabulary: IRIs of the RDF, RDFS, OWL and XSD terms the translator
//     recognises
//   - graph: nodes, statements and the indexed in-memory statement store
//   - codec: N-Quads reading and writing on top of cayleygraph/quad
//   - axiom: entities, class expressions, data ranges and axiom types
//   - search: implicit-statement searchers that find entities used but never
//     declared
//   - identity: stable individual identities for blank nodes
//   - lock: reader/writer lock with timeouts used to guard a graph
//   - manager: the thread-safe facade that ties the pieces together
//   - storage: persistence of graphs in memory, SQLite or NATS KV
//   - config: layered JSON/YAML configuration with environment overrides
//
// The ontograph command loads graphs from N-Quads files or a configured
// store and prints implicit statements, translated axioms or statistics.
//
// # Example
//
//	mgr, err := manager.New(manager.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	if err := mgr.Load(ctx, file); err != nil {
//		return err
//	}
//	decls, err := mgr.Axioms(ctx, axiom.KindDeclaration)
package ontograph
