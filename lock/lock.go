package lock

import (
	"context"
	"time"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/pkg/retry"
)

// Lock guards the shared graph and its derived views.
//
// Lock/Unlock bracket a write section and RLock/RUnlock a read section. Wait, Signal and
// Broadcast form a condition on the write lock: Wait must be called with the write lock
// held, releases it while waiting and holds it again on return.
type Lock interface {
	Lock()
	// TryLock acquires the write lock within timeout and reports whether it did
	TryLock(timeout time.Duration) bool
	Unlock()
	RLock()
	// TryRLock acquires a read lock within timeout and reports whether it did
	TryRLock(timeout time.Duration) bool
	RUnlock()
	// Wait blocks until signalled or until timeout (zero waits indefinitely) and reports
	// whether it was signalled
	Wait(timeout time.Duration) bool
	Signal()
	Broadcast()
	// Concurrent reports whether the lock actually synchronizes
	Concurrent() bool
}

// New returns a Mutex for concurrent managers and a Noop otherwise
func New(concurrent bool) Lock {
	if concurrent {
		return NewMutex()
	}
	return Noop{}
}

// Mode selects the write or read side of a lock
type Mode string

const (
	Write Mode = "write"
	Read  Mode = "read"
)

// Acquire takes the lock in the given mode. A positive timeout bounds the wait; when it
// expires the result is a transient ErrLockTimeout. A cancelled ctx is checked first.
func Acquire(ctx context.Context, l Lock, mode Mode, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapTransient(err, "lock", "Acquire", "context check")
	}
	if timeout <= 0 {
		if mode == Read {
			l.RLock()
		} else {
			l.Lock()
		}
		return nil
	}

	var ok bool
	if mode == Read {
		ok = l.TryRLock(timeout)
	} else {
		ok = l.TryLock(timeout)
	}
	if !ok {
		return errors.LockTimeout("lock", "Acquire", timeout)
	}
	return nil
}

// Release undoes Acquire for the same mode
func Release(l Lock, mode Mode) {
	if mode == Read {
		l.RUnlock()
		return
	}
	l.Unlock()
}

// Section runs fn while holding the lock in mode. Lock timeouts are retried with backoff
// according to cfg; errors returned by fn are never retried.
func Section(ctx context.Context, l Lock, mode Mode, timeout time.Duration, cfg retry.Config, fn func() error) error {
	err := retry.DoIf(ctx, cfg, errors.IsLockTimeout, func() error {
		return Acquire(ctx, l, mode, timeout)
	})
	if err != nil {
		return err
	}
	defer Release(l, mode)
	return fn()
}

// WithWrite runs fn in a write section
func WithWrite(ctx context.Context, l Lock, timeout time.Duration, cfg retry.Config, fn func() error) error {
	return Section(ctx, l, Write, timeout, cfg, fn)
}

// WithRead runs fn in a read section
func WithRead(ctx context.Context, l Lock, timeout time.Duration, cfg retry.Config, fn func() error) error {
	return Section(ctx, l, Read, timeout, cfg, fn)
}
