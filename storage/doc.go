// Package storage persists the statements of named graphs.
//
// # Overview
//
// Store is a small interface over whole-graph snapshots: Save replaces a named graph,
// Load returns it, List enumerates names by prefix and Delete removes one. Three backends
// implement it:
//   - Memory: in-process, used by default and in tests
//   - sqlite.Store: one row per statement in a local SQLite database
//   - natskv.Store: one N-Quads document per graph in a NATS JetStream key-value bucket
//
// # Anonymous identities
//
// Blank nodes are persisted as their label and nothing else. Because an anonymous
// identity is a function of its label, a graph loaded back from any backend yields
// individuals equal to the ones that were saved.
//
// # Errors
//
// A missing graph yields an error wrapping errors.ErrKeyNotFound (see IsNotFound). A
// closed or unreachable backend yields errors.ErrStorageUnavailable. Malformed names
// fail ValidateName with errors.ErrInvalidArgument.
package storage
