package cache

import (
	"fmt"

	"github.com/c360/ontograph/errors"
)

// Strategy selects how a cache bounds its size.
type Strategy string

const (
	// StrategySimple keeps every entry until it is deleted or the cache is cleared.
	StrategySimple Strategy = "simple"

	// StrategyLRU evicts the least recently used entry once MaxSize is exceeded.
	StrategyLRU Strategy = "lru"
)

// Config selects and sizes a cache.
type Config struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	// MaxSize bounds the entry count; LRU only.
	MaxSize int `json:"max_size" yaml:"max_size"`
}

// DefaultConfig is an enabled LRU cache of 4096 entries
func DefaultConfig() Config {
	return Config{Enabled: true, Strategy: StrategyLRU, MaxSize: 4096}
}

// Validate checks an enabled configuration; a disabled one is always valid
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Strategy {
	case StrategySimple:
		return nil
	case StrategyLRU:
		if c.MaxSize > 0 {
			return nil
		}
		return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
			fmt.Sprintf("lru cache needs a positive max_size, got %d", c.MaxSize))
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
			fmt.Sprintf("unknown strategy %q", c.Strategy))
	}
}

// NewFromConfig builds the cache config describes, or a no-op cache when it is disabled
func NewFromConfig[V any](config Config, options ...Option[V]) (Cache[V], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch {
	case !config.Enabled:
		return NewNoop[V](), nil
	case config.Strategy == StrategySimple:
		return NewSimple(options...)
	default:
		return NewLRU(config.MaxSize, options...)
	}
}

// NewLRU creates a cache holding at most maxSize entries
func NewLRU[V any](maxSize int, options ...Option[V]) (Cache[V], error) {
	if maxSize <= 0 {
		return nil, errors.InvalidArgument("cache", "NewLRU", "max size must be positive, got %d", maxSize)
	}
	return build(maxSize, collect(options))
}

// NewSimple creates an unbounded cache
func NewSimple[V any](options ...Option[V]) (Cache[V], error) {
	return build(0, collect(options))
}

// build keeps a failed construction from returning a typed nil inside the interface
func build[V any](limit int, s settings[V]) (Cache[V], error) {
	c, err := newLRUCache(limit, s)
	if err != nil {
		return nil, err
	}
	return c, nil
}
