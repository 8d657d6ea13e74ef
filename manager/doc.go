// Package manager owns a statement graph together with its derived views: anonymous
// identities, top-entity searchers and the axiom translator.
//
// Every operation runs inside a section of the manager's lock. Mutations (Add, Remove,
// Load, Restore) take the write side; queries take the read side and may run in
// parallel. Lock waits are bounded by Config.LockTimeout and retried with backoff per
// Config.Retry; when retries run out the operation fails with a transient
// errors.ErrLockTimeout so callers can decide to try again.
//
// Axioms merges the direct translation of the graph with the axioms recovered from each
// searcher's implicit statements; set semantics on axiom keys remove the overlap.
//
//	mgr, err := manager.New(manager.DefaultConfig(), manager.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	if _, err := mgr.Load(ctx, file); err != nil {
//		return err
//	}
//	axioms, err := mgr.CardinalityAxioms(ctx, vocabulary.RdfsLiteral)
package manager
