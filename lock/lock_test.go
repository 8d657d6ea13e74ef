package lock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/pkg/retry"
)

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func TestNew(t *testing.T) {
	assert.True(t, New(true).Concurrent())
	assert.False(t, New(false).Concurrent())
	assert.IsType(t, &Mutex{}, New(true))
	assert.IsType(t, Noop{}, New(false))
}

func TestAcquireRelease_NoContention(t *testing.T) {
	for _, l := range []Lock{NewMutex(), Noop{}} {
		t.Run(fmt.Sprintf("concurrent=%v", l.Concurrent()), func(t *testing.T) {
			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 100; i++ {
					l.Lock()
					l.Unlock()
					assert.True(t, l.TryLock(time.Millisecond))
					l.Unlock()
					l.RLock()
					l.RUnlock()
				}
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("acquire/release blocked without contention")
			}
		})
	}
}

func TestNoop(t *testing.T) {
	var l Noop
	l.Lock()
	l.Lock() // never blocks, even re-entrantly
	assert.True(t, l.TryLock(0))
	assert.True(t, l.TryRLock(time.Nanosecond))
	assert.True(t, l.Wait(time.Hour))
	l.Signal()
	l.Broadcast()
	l.Unlock()
}

func TestMutex_TryLockTimesOut(t *testing.T) {
	m := NewMutex()
	m.Lock()
	defer m.Unlock()

	start := time.Now()
	assert.False(t, m.TryLock(20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.False(t, m.TryRLock(time.Millisecond))
}

func TestMutex_ReadersShareWritersExclude(t *testing.T) {
	m := NewMutex()
	m.RLock()
	assert.True(t, m.TryRLock(time.Millisecond), "second reader")
	assert.False(t, m.TryLock(5*time.Millisecond), "writer while readers hold")
	m.RUnlock()
	m.RUnlock()
	assert.True(t, m.TryLock(time.Millisecond))
	m.Unlock()
}

func TestMutex_WritesTotallyOrdered(t *testing.T) {
	m := NewMutex()
	var inside, maxInside int32
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Lock()
				n := atomic.AddInt32(&inside, 1)
				if n > atomic.LoadInt32(&maxInside) {
					atomic.StoreInt32(&maxInside, n)
				}
				counter++
				atomic.AddInt32(&inside, -1)
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16*50, counter)
	assert.Equal(t, int32(1), maxInside)
}

func TestMutex_WaitSignal(t *testing.T) {
	m := NewMutex()
	ready := false
	woke := make(chan bool)

	go func() {
		m.Lock()
		defer m.Unlock()
		for !ready {
			if !m.Wait(time.Second) {
				woke <- false
				return
			}
		}
		woke <- true
	}()

	// wait until the goroutine is parked in Wait
	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.waiters) == 1
	}, time.Second, time.Millisecond)

	m.Lock()
	ready = true
	m.Signal()
	m.Unlock()

	assert.True(t, <-woke)
}

func TestMutex_WaitTimeout(t *testing.T) {
	m := NewMutex()
	m.Lock()
	assert.False(t, m.Wait(10*time.Millisecond))
	// the lock is held again after Wait returns
	assert.False(t, m.TryLock(time.Millisecond))
	m.Unlock()

	m.mu.Lock()
	assert.Empty(t, m.waiters)
	m.mu.Unlock()
}

func TestMutex_Broadcast(t *testing.T) {
	m := NewMutex()
	const n = 4
	var wg sync.WaitGroup
	var woken atomic.Int32

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock()
			if m.Wait(time.Second) {
				woken.Add(1)
			}
			m.Unlock()
		}()
	}

	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.waiters) == n
	}, time.Second, time.Millisecond)

	m.Broadcast()
	wg.Wait()
	assert.Equal(t, int32(n), woken.Load())
}

func TestAcquire_Timeout(t *testing.T) {
	m := NewMutex()
	m.Lock()
	defer m.Unlock()

	err := Acquire(context.Background(), m, Write, 5*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.IsLockTimeout(err))
	assert.True(t, errors.IsTransient(err))

	err = Acquire(context.Background(), m, Read, 5*time.Millisecond)
	assert.True(t, errors.IsLockTimeout(err))
}

func TestAcquire_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Acquire(ctx, Noop{}, Write, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithWrite_RetriesTimeout(t *testing.T) {
	m := NewMutex()
	m.Lock()

	// release after the first attempt times out
	go func() {
		time.Sleep(8 * time.Millisecond)
		m.Unlock()
	}()

	ran := false
	cfg := retry.Config{MaxAttempts: 5, InitialDelay: 5 * time.Millisecond, MaxDelay: 20 * time.Millisecond, Multiplier: 2}
	err := WithWrite(context.Background(), m, 5*time.Millisecond, cfg, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, m.TryLock(time.Millisecond), "section released the lock")
	m.Unlock()
}

func TestWithWrite_GivesUp(t *testing.T) {
	m := NewMutex()
	m.Lock()
	defer m.Unlock()

	err := WithWrite(context.Background(), m, time.Millisecond, fastRetry(), func() error {
		t.Fatal("section must not run")
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsLockTimeout(err))
}

func TestWithRead_SectionErrorNotRetried(t *testing.T) {
	calls := 0
	sentinel := fmt.Errorf("boom")
	err := WithRead(context.Background(), NewMutex(), time.Millisecond, fastRetry(), func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
