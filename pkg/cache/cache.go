package cache

import (
	"github.com/c360/ontograph/errors"
)

// Cache is a concurrency-safe string-keyed store of V.
type Cache[V any] interface {
	Get(key string) (V, bool)

	// Set reports whether key was new; an empty key is an invalid error.
	Set(key string, value V) (bool, error)

	// Delete reports whether key was present.
	Delete(key string) (bool, error)

	Clear() error
	Size() int
	Keys() []string

	// Stats is nil for the no-op cache.
	Stats() *Statistics

	Close() error
}

// EvictCallback receives entries as they leave a cache.
type EvictCallback[V any] func(key string, value V)

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
// A compute error is returned as is and nothing is stored.
func GetOrCompute[V any](c Cache[V], key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	if _, err := c.Set(key, v); err != nil {
		return v, err
	}
	return v, nil
}

func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "cache", "validateKey", "empty key")
	}
	return nil
}

// NewNoop returns a cache that stores nothing, used when caching is disabled
func NewNoop[V any]() Cache[V] {
	return noopCache[V]{}
}

type noopCache[V any] struct{}

func (noopCache[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

func (noopCache[V]) Set(string, V) (bool, error) { return false, nil }
func (noopCache[V]) Delete(string) (bool, error) { return false, nil }
func (noopCache[V]) Clear() error                { return nil }
func (noopCache[V]) Size() int                   { return 0 }
func (noopCache[V]) Keys() []string              { return nil }
func (noopCache[V]) Stats() *Statistics          { return nil }
func (noopCache[V]) Close() error                { return nil }
