package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/metric"
)

func testBasicOperations(t *testing.T, c Cache[string]) {
	_, ok := c.Get("key1")
	assert.False(t, ok)

	isNew, err := c.Set("key1", "value1")
	require.NoError(t, err)
	assert.True(t, isNew)

	v, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", v)

	isNew, err = c.Set("key1", "value1_updated")
	require.NoError(t, err)
	assert.False(t, isNew)

	v, _ = c.Get("key1")
	assert.Equal(t, "value1_updated", v)

	deleted, err := c.Delete("key1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.Delete("key1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStrategies_BasicOperations(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Cache[string], error)
	}{
		{"simple", func() (Cache[string], error) { return NewSimple[string]() }},
		{"lru", func() (Cache[string], error) { return NewLRU[string](8) }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := test.build()
			require.NoError(t, err)
			defer c.Close()
			testBasicOperations(t, c)
		})
	}
}

func TestLRU_Eviction(t *testing.T) {
	var evicted []string
	c, err := NewLRU[int](2, WithEvictionCallback(func(key string, _ int) {
		evicted = append(evicted, key)
	}))
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)
	_, _ = c.Get("a") // b becomes least recently used
	_, _ = c.Set("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, []string{"c", "a"}, c.Keys())
	assert.Equal(t, int64(1), c.Stats().Evictions())
}

func TestSimple_NoEviction(t *testing.T) {
	c, err := NewSimple[int]()
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		_, err := c.Set(fmt.Sprintf("k%d", i), i)
		require.NoError(t, err)
	}
	assert.Equal(t, 100, c.Size())
	assert.Equal(t, int64(0), c.Stats().Evictions())
}

func TestSet_EmptyKey(t *testing.T) {
	c, err := NewSimple[int]()
	require.NoError(t, err)

	_, err = c.Set("", 1)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestClear(t *testing.T) {
	c, err := NewLRU[int](10)
	require.NoError(t, err)
	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, int64(0), c.Stats().CurrentSize())
	assert.Equal(t, int64(2), c.Stats().MaxSize())
}

func TestGetOrCompute(t *testing.T) {
	c, err := NewSimple[string]()
	require.NoError(t, err)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "built", nil
	}

	v, err := GetOrCompute(c, "frag", compute)
	require.NoError(t, err)
	assert.Equal(t, "built", v)

	v, err = GetOrCompute(c, "frag", compute)
	require.NoError(t, err)
	assert.Equal(t, "built", v)
	assert.Equal(t, 1, calls)

	_, err = GetOrCompute(c, "bad", func() (string, error) { return "", fmt.Errorf("boom") })
	require.Error(t, err)
	_, ok := c.Get("bad")
	assert.False(t, ok)

	stats := c.Stats().Summary()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(3), stats.Misses)
}

func TestStatistics_Ratios(t *testing.T) {
	s := NewStatistics()
	assert.Equal(t, 0.0, s.HitRatio())

	s.Hit()
	s.Hit()
	s.Hit()
	s.Miss()
	assert.InDelta(t, 0.75, s.HitRatio(), 1e-9)

	s.UpdateSize(4)
	s.UpdateSize(2)
	assert.Equal(t, int64(2), s.CurrentSize())
	assert.Equal(t, int64(4), s.MaxSize())

	s.Reset()
	assert.Equal(t, int64(0), s.Hits())
	assert.Equal(t, int64(0), s.MaxSize())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"disabled ignores fields", Config{Enabled: false, Strategy: "bogus"}, false},
		{"simple", Config{Enabled: true, Strategy: StrategySimple}, false},
		{"lru without size", Config{Enabled: true, Strategy: StrategyLRU}, true},
		{"unknown strategy", Config{Enabled: true, Strategy: "ttl"}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.config.Validate()
			if test.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalid(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	c, err := NewFromConfig[int](Config{Enabled: false})
	require.NoError(t, err)
	_, _ = c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Nil(t, c.Stats())

	c, err = NewFromConfig[int](Config{Enabled: true, Strategy: StrategyLRU, MaxSize: 1})
	require.NoError(t, err)
	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)
	assert.Equal(t, 1, c.Size())

	_, err = NewFromConfig[int](Config{Enabled: true, Strategy: StrategyLRU})
	assert.Error(t, err)
}

func TestWithMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	c, err := NewLRU[int](4, WithMetrics[int](registry, "translator"))
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("missing")

	obs := c.(*lruCache[int]).obs
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.ops.WithLabelValues(opHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.ops.WithLabelValues(opMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.size))

	_, err = NewLRU[int](4, WithMetrics[int](registry, "translator"))
	assert.Error(t, err, "a second cache under the same name must fail registration")

	other, err := NewSimple[int](WithMetrics[int](registry, "identities"))
	require.NoError(t, err)
	_, _ = other.Get("x")
	assert.Equal(t, 1.0, testutil.ToFloat64(other.(*lruCache[int]).obs.ops.WithLabelValues(opMiss)))
}

func TestConcurrentAccess(t *testing.T) {
	c, err := NewLRU[int](64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*i)%100)
				_, _ = c.Set(key, i)
				_, _ = c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Size(), 64)
}
