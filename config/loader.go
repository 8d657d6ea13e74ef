package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/pkg/cache"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ONTOGRAPH"

// durationFields lists the duration paths that accept strings such as "250ms"
var durationFields = [][]string{
	{"manager", "lock_timeout"},
	{"manager", "retry", "initial_delay"},
	{"manager", "retry", "max_delay"},
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:     []string{},
		validation: true,
		envPrefix:  EnvPrefix,
		lookupEnv:  os.LookupEnv,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier ones.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load merges defaults, every layer and the environment, then validates
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	for _, path := range l.layers {
		raw, err := l.loadRaw(path)
		if err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", fmt.Sprintf("load %s", path))
		}
		cfg, err = l.mergeFromMap(cfg, raw)
		if err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", fmt.Sprintf("merge %s", path))
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "apply environment overrides")
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadRaw reads a JSON or YAML file into a generic map with durations normalized
func (l *Loader) loadRaw(path string) (map[string]any, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrParsingFailed, err)
		}
	default:
		if err := validateJSONDepth(data); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrParsingFailed, err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrParsingFailed, err)
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	if err := parseDurations(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// parseDurations converts duration strings to nanoseconds for json unmarshaling
func parseDurations(data map[string]any) error {
	for _, path := range durationFields {
		parent := data
		for _, key := range path[:len(path)-1] {
			next, ok := parent[key].(map[string]any)
			if !ok {
				parent = nil
				break
			}
			parent = next
		}
		if parent == nil {
			continue
		}

		leaf := path[len(path)-1]
		s, ok := parent[leaf].(string)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%s: %w", strings.Join(path, "."), err)
		}
		parent[leaf] = d.Nanoseconds()
	}
	return nil
}

// mergeFromMap merges configuration from a raw map, only overriding fields present in the map
func (l *Loader) mergeFromMap(base *Config, override map[string]any) (*Config, error) {
	baseJSON, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}

	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return nil, err
	}

	mergedJSON, err := json.Marshal(deepMergeMaps(baseMap, override))
	if err != nil {
		return nil, err
	}

	var merged Config
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	var firstErr error
	env := func(name string, apply func(string) error) {
		val, ok := l.lookupEnv(l.envPrefix + "_" + name)
		if !ok || val == "" || firstErr != nil {
			return
		}
		if err := validateEnvVar(l.envPrefix+"_"+name, val); err != nil {
			firstErr = err
			return
		}
		if err := apply(val); err != nil {
			firstErr = fmt.Errorf("%s_%s: %w", l.envPrefix, name, err)
		}
	}

	// Manager overrides
	env("CONCURRENT", func(v string) (err error) {
		cfg.Manager.Concurrent, err = strconv.ParseBool(v)
		return err
	})
	env("LOCK_TIMEOUT", func(v string) (err error) {
		cfg.Manager.LockTimeout, err = time.ParseDuration(v)
		return err
	})
	env("LOCK_RETRIES", func(v string) (err error) {
		cfg.Manager.Retry.MaxRetries, err = strconv.Atoi(v)
		return err
	})
	env("BLANK_POLICY", func(v string) error {
		cfg.Manager.BlankPolicy = codec.BlankPolicy(strings.ToLower(v))
		return nil
	})

	// Cache overrides
	env("CACHE_ENABLED", func(v string) (err error) {
		cfg.Cache.Enabled, err = strconv.ParseBool(v)
		return err
	})
	env("CACHE_STRATEGY", func(v string) error {
		cfg.Cache.Strategy = cache.Strategy(strings.ToLower(v))
		return nil
	})
	env("CACHE_MAX_SIZE", func(v string) (err error) {
		cfg.Cache.MaxSize, err = strconv.Atoi(v)
		return err
	})

	// Storage overrides
	env("STORAGE_BACKEND", func(v string) error {
		cfg.Storage.Backend = strings.ToLower(v)
		return nil
	})
	env("SQLITE_PATH", func(v string) error {
		cfg.Storage.SQLitePath = v
		return nil
	})
	env("NATS_URL", func(v string) error {
		cfg.Storage.NATSURL = v
		return nil
	})
	env("NATS_BUCKET", func(v string) error {
		cfg.Storage.Bucket = v
		return nil
	})

	// Log and metrics overrides
	env("LOG_LEVEL", func(v string) error {
		cfg.Log.Level = strings.ToLower(v)
		return nil
	})
	env("LOG_FORMAT", func(v string) error {
		cfg.Log.Format = strings.ToLower(v)
		return nil
	})
	env("METRICS_PORT", func(v string) (err error) {
		cfg.Metrics.Port, err = strconv.Atoi(v)
		return err
	})

	return firstErr
}

// SaveToFile writes the configuration as JSON or YAML depending on the extension
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, "config", "SaveToFile", "marshal configuration")
	}
	if err := safeWriteFile(path, data); err != nil {
		return errors.Wrap(err, "config", "SaveToFile", "write configuration")
	}
	return nil
}
