package manager

import (
	"log/slog"

	"github.com/c360/ontograph/metric"
	"github.com/c360/ontograph/search"
	"github.com/c360/ontograph/storage"
)

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger; nil keeps slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics records manager and translation cache metrics in registry
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(m *Manager) {
		m.registry = registry
	}
}

// WithStore enables Persist and Restore
func WithStore(store storage.Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithSearchers replaces the default searcher registry
func WithSearchers(searchers *search.Registry) Option {
	return func(m *Manager) {
		if searchers != nil {
			m.searchers = searchers
		}
	}
}
