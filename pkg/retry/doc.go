// Package retry runs an operation again with exponential backoff while its errors are
// worth retrying.
//
// Lock sections retry only lock timeouts, so a busy lock is waited out while an
// invalid argument returns at once:
//
//	err := retry.DoIf(ctx, cfg, errors.IsLockTimeout, func() error {
//		return lock.Acquire(ctx, l, lock.Write, timeout)
//	})
//
// The NATS KV store retries every failed put with Do.
package retry
