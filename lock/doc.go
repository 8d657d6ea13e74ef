// Package lock provides the access lock of a graph manager.
//
// A manager picks its lock once at construction: Mutex when it is shared between
// goroutines, Noop when it is used from a single goroutine. Both satisfy Lock, so code
// guarding a section is the same either way:
//
//	err := lock.WithWrite(ctx, l, 100*time.Millisecond, retry.DefaultConfig(), func() error {
//		_, err := g.Add(statements...)
//		return err
//	})
//
// A bounded wait that expires yields errors.ErrLockTimeout, classified transient;
// WithWrite and WithRead retry it with backoff before giving up.
package lock
