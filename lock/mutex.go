package lock

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// maxReaders bounds concurrent read sections; a writer acquires all of them
const maxReaders = 1 << 30

// Mutex is a reader/writer lock with bounded waits.
//
// It is built on a weighted semaphore: a reader takes one unit and a writer takes every
// unit. Waiters are served in FIFO order, so a pending writer holds back later readers.
type Mutex struct {
	sem *semaphore.Weighted

	mu      sync.Mutex
	waiters []chan struct{}
}

// NewMutex creates an unlocked Mutex
func NewMutex() *Mutex {
	return &Mutex{sem: semaphore.NewWeighted(maxReaders)}
}

func (m *Mutex) Lock() { m.acquire(maxReaders, 0) }

func (m *Mutex) TryLock(timeout time.Duration) bool { return m.acquire(maxReaders, timeout) }

func (m *Mutex) Unlock() { m.sem.Release(maxReaders) }

func (m *Mutex) RLock() { m.acquire(1, 0) }

func (m *Mutex) TryRLock(timeout time.Duration) bool { return m.acquire(1, timeout) }

func (m *Mutex) RUnlock() { m.sem.Release(1) }

func (m *Mutex) Concurrent() bool { return true }

func (m *Mutex) acquire(n int64, timeout time.Duration) bool {
	if timeout <= 0 {
		return m.sem.Acquire(context.Background(), n) == nil
	}
	if m.sem.TryAcquire(n) {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return m.sem.Acquire(ctx, n) == nil
}

// Wait releases the write lock, waits for Signal or Broadcast, and reacquires the lock.
// It returns false when timeout elapsed first.
func (m *Mutex) Wait(timeout time.Duration) bool {
	ch := make(chan struct{})
	m.mu.Lock()
	m.waiters = append(m.waiters, ch)
	m.mu.Unlock()

	m.Unlock()
	defer m.Lock()

	if timeout <= 0 {
		<-ch
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
		return true
	case <-timer.C:
		return !m.forget(ch)
	}
}

// forget removes a timed-out waiter. It returns false if a signal already claimed it.
func (m *Mutex) forget(ch chan struct{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.waiters {
		if w == ch {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Signal wakes the longest waiting Wait call, if any
func (m *Mutex) Signal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.waiters) == 0 {
		return
	}
	close(m.waiters[0])
	m.waiters = m.waiters[1:]
}

// Broadcast wakes every waiting Wait call
func (m *Mutex) Broadcast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.waiters {
		close(w)
	}
	m.waiters = nil
}
