package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/manager"
	"github.com/c360/ontograph/pkg/cache"
)

// Storage backend names
const (
	BackendNone   = "none"   // graphs are never persisted
	BackendMemory = "memory" // process-local, lost on exit
	BackendSQLite = "sqlite" // single file database
	BackendNATS   = "nats"   // JetStream key-value bucket
)

// Config represents the complete application configuration
type Config struct {
	Version string         `json:"version" yaml:"version"` // Semantic version (e.g., "1.0.0")
	Manager manager.Config `json:"manager" yaml:"manager"`
	Cache   cache.Config   `json:"cache" yaml:"cache"`
	Storage StorageConfig  `json:"storage" yaml:"storage"`
	Log     LogConfig      `json:"log" yaml:"log"`
	Metrics MetricsConfig  `json:"metrics" yaml:"metrics"`
}

// StorageConfig selects where graphs are persisted
type StorageConfig struct {
	Backend    string `json:"backend" yaml:"backend"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	NATSURL    string `json:"nats_url,omitempty" yaml:"nats_url,omitempty"`
	Bucket     string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

// LogConfig defines logger construction
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json, text
}

// MetricsConfig controls the Prometheus endpoint. Port 0 disables it.
type MetricsConfig struct {
	Port int    `json:"port" yaml:"port"`
	Path string `json:"path" yaml:"path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	mc := manager.DefaultConfig()
	mc.Cache = cache.Config{} // carried by the top-level cache section
	return &Config{
		Version: "1.0.0",
		Manager: mc,
		Cache:   cache.DefaultConfig(),
		Storage: StorageConfig{
			Backend: BackendNone,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
	}
}

// ManagerConfig returns the manager section with the cache section folded in
func (c *Config) ManagerConfig() manager.Config {
	mc := c.Manager
	mc.Cache = c.Cache
	return mc
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Version != "" {
		if err := checkVersion(c.Version); err != nil {
			return invalid("version", err.Error())
		}
	}

	if err := c.ManagerConfig().Validate(); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case "", BackendNone, BackendMemory:
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return invalid("storage.sqlite_path", "required for the sqlite backend")
		}
	case BackendNATS:
		if c.Storage.NATSURL == "" {
			return invalid("storage.nats_url", "required for the nats backend")
		}
	default:
		return invalid("storage.backend", fmt.Sprintf("unknown backend %q", c.Storage.Backend))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return invalid("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return invalid("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}

	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return invalid("metrics.port", fmt.Sprintf("out of range: %d", c.Metrics.Port))
	}
	if c.Metrics.Port > 0 && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path", fmt.Sprintf("must start with /: %q", c.Metrics.Path))
	}
	return nil
}

func invalid(field, reason string) error {
	return errors.WrapInvalid(fmt.Errorf("%w: %s %s", errors.ErrInvalidConfig, field, reason),
		"config", "Validate", "field check")
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return Default()
	}
	// every field is a value type
	copied := *c
	return &copied
}

// String renders the configuration as indented JSON
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Default()
	}
	return &SafeConfig{
		config: cfg,
	}
}

// Get returns a copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.InvalidArgument("config", "Update", "config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg.Clone()
	return nil
}
