package cache

import (
	"github.com/c360/ontograph/metric"
)

// Option customises a cache at construction.
type Option[V any] func(*settings[V])

type settings[V any] struct {
	registry *metric.MetricsRegistry
	name     string
	onEvict  EvictCallback[V]
}

// WithMetrics exports the cache's operations to registry, labelled with name.
// A nil registry or empty name leaves metrics off.
func WithMetrics[V any](registry *metric.MetricsRegistry, name string) Option[V] {
	return func(s *settings[V]) {
		s.registry, s.name = registry, name
	}
}

// WithEvictionCallback is invoked for every entry that leaves the cache through
// eviction, Delete or Clear. It runs without the cache lock held.
func WithEvictionCallback[V any](fn EvictCallback[V]) Option[V] {
	return func(s *settings[V]) {
		s.onEvict = fn
	}
}

func collect[V any](opts []Option[V]) settings[V] {
	var s settings[V]
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
