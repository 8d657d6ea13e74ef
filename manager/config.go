package manager

import (
	"fmt"
	"time"

	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/pkg/cache"
)

// Config controls how a Manager guards and translates its graph.
type Config struct {
	// Concurrent selects a real reader/writer lock. When false every section runs
	// unguarded, which is only safe for single-goroutine callers.
	Concurrent bool `json:"concurrent" yaml:"concurrent"`

	// LockTimeout bounds each attempt to enter a section; zero waits forever.
	LockTimeout time.Duration `json:"lock_timeout" yaml:"lock_timeout"`

	// Retry governs how lock timeouts are retried before the section fails.
	Retry errors.RetryConfig `json:"retry" yaml:"retry"`

	// BlankPolicy applies to documents read by Load.
	BlankPolicy codec.BlankPolicy `json:"blank_policy" yaml:"blank_policy"`

	// Cache configures the translation cache. It is a top-level section of the
	// application configuration, so it is not serialized here.
	Cache cache.Config `json:"-" yaml:"-"`
}

// DefaultConfig returns a concurrent configuration with a bounded translation cache.
func DefaultConfig() Config {
	return Config{
		Concurrent:  true,
		LockTimeout: 2 * time.Second,
		Retry:       errors.DefaultRetryConfig(),
		BlankPolicy: codec.KeepLabels,
		Cache:       cache.DefaultConfig(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.LockTimeout < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "manager", "Validate",
			fmt.Sprintf("lock_timeout must not be negative, got %s", c.LockTimeout))
	}
	if c.Retry.MaxRetries < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "manager", "Validate",
			fmt.Sprintf("retry.max_retries must not be negative, got %d", c.Retry.MaxRetries))
	}
	if c.Retry.BackoffFactor != 0 && c.Retry.BackoffFactor < 1 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "manager", "Validate",
			fmt.Sprintf("retry.backoff_factor must be at least 1, got %g", c.Retry.BackoffFactor))
	}
	if err := c.BlankPolicy.Validate(); err != nil {
		return err
	}
	return c.Cache.Validate()
}
