package lock

import "time"

// Noop is the lock of a single-threaded manager. Every operation succeeds immediately
// and Wait reports the condition as already satisfied.
type Noop struct{}

func (Noop) Lock()                         {}
func (Noop) TryLock(_ time.Duration) bool  { return true }
func (Noop) Unlock()                       {}
func (Noop) RLock()                        {}
func (Noop) TryRLock(_ time.Duration) bool { return true }
func (Noop) RUnlock()                      {}
func (Noop) Wait(_ time.Duration) bool     { return true }
func (Noop) Signal()                       {}
func (Noop) Broadcast()                    {}
func (Noop) Concurrent() bool              { return false }
