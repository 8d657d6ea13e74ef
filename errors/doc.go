// Package errors provides standardized error handling patterns for ontograph.
//
// # Overview
//
// Every failure surfaced by the graph, identity, search and lock layers belongs to one of
// three classes so that a caller can decide what to do without string matching:
//
//   - Transient: a bounded lock wait expired (ErrLockTimeout). Retry, or abandon the operation.
//   - Invalid: caller misuse such as a negative suffix passed to a naming helper
//     (ErrInvalidArgument). Never retried.
//   - Fatal: an anonymous reference cannot be resolved because its graph is gone or the label
//     was never registered (ErrMissingIdentity). Report corrupted input.
//
// The classes integrate with errors.Is and errors.As through ClassifiedError.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the format:
//
//	"component.method: action failed: %w"
//
// Classification-aware wrappers:
//
//	errors.WrapTransient(err, "Mutex", "Acquire", "lock acquisition")
//	errors.WrapInvalid(err, "vocabulary", "ErrorMarker", "argument check")
//	errors.WrapFatal(err, "Registry", "Resolve", "identity lookup")
//
// The constructors InvalidArgument, MissingIdentity and LockTimeout build the three
// taxonomy errors directly:
//
//	if n < 0 {
//	    return "", errors.InvalidArgument("vocabulary", "ErrorMarker", "negative suffix %d", n)
//	}
//
// # Branching on kind
//
//	switch {
//	case errors.IsLockTimeout(err):
//	    // retry the lock
//	case errors.IsMissingIdentity(err):
//	    // report corrupted input
//	case errors.IsInvalidArgument(err):
//	    // programmer error
//	}
//
// # Retry Configuration
//
// RetryConfig describes how lock timeouts are retried and converts to the pkg/retry
// framework configuration:
//
//	cfg := errors.DefaultRetryConfig().ToRetryConfig()
//	err := retry.Do(ctx, cfg, func() error { return lock.Acquire(ctx, l, lock.Write, timeout) })
package errors
