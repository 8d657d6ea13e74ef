package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/pkg/cache"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestLoader(env map[string]string) *Loader {
	l := NewLoader()
	l.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return l
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Manager.Concurrent)
	assert.Equal(t, BackendNone, cfg.Storage.Backend)
	assert.Equal(t, cache.DefaultConfig(), cfg.ManagerConfig().Cache)
}

func TestLoader_JSONLayer(t *testing.T) {
	path := writeFile(t, "ontograph.json", `{
		"manager": {"concurrent": false, "lock_timeout": "250ms", "retry": {"max_retries": 5}},
		"cache": {"enabled": true, "strategy": "simple"},
		"storage": {"backend": "sqlite", "sqlite_path": "graphs.db"}
	}`)

	cfg, err := newTestLoader(nil).LoadFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.Manager.Concurrent)
	assert.Equal(t, 250*time.Millisecond, cfg.Manager.LockTimeout)
	assert.Equal(t, 5, cfg.Manager.Retry.MaxRetries)
	assert.Equal(t, errors.DefaultRetryConfig().InitialDelay, cfg.Manager.Retry.InitialDelay, "unset keys keep defaults")
	assert.Equal(t, cache.StrategySimple, cfg.Cache.Strategy)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_YAMLLayerOverridesJSON(t *testing.T) {
	base := writeFile(t, "base.json", `{"manager": {"lock_timeout": "1s"}, "log": {"level": "debug"}}`)
	override := writeFile(t, "override.yaml", `
manager:
  lock_timeout: 3s
  blank_policy: fresh
log:
  format: json
`)

	l := newTestLoader(nil)
	l.AddLayer(base)
	l.AddLayer(override)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Manager.LockTimeout)
	assert.Equal(t, codec.FreshLabels, cfg.Manager.BlankPolicy)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoader_EnvOverrides(t *testing.T) {
	cfg, err := newTestLoader(map[string]string{
		"ONTOGRAPH_CONCURRENT":      "false",
		"ONTOGRAPH_LOCK_TIMEOUT":    "5s",
		"ONTOGRAPH_CACHE_MAX_SIZE":  "10",
		"ONTOGRAPH_STORAGE_BACKEND": "NATS",
		"ONTOGRAPH_NATS_URL":        "nats://localhost:4222",
		"ONTOGRAPH_METRICS_PORT":    "9090",
	}).Load()
	require.NoError(t, err)

	assert.False(t, cfg.Manager.Concurrent)
	assert.Equal(t, 5*time.Second, cfg.Manager.LockTimeout)
	assert.Equal(t, 10, cfg.Cache.MaxSize)
	assert.Equal(t, BackendNATS, cfg.Storage.Backend)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		body  string
		env   map[string]string
		match error
	}{
		{name: "bad duration", file: "c.json", body: `{"manager": {"lock_timeout": "soon"}}`},
		{name: "malformed json", file: "c.json", body: `{"manager": `, match: errors.ErrParsingFailed},
		{name: "malformed yaml", file: "c.yaml", body: "manager: [", match: errors.ErrParsingFailed},
		{name: "unknown backend", file: "c.json", body: `{"storage": {"backend": "s3"}}`, match: errors.ErrInvalidConfig},
		{name: "sqlite without path", file: "c.json", body: `{"storage": {"backend": "sqlite"}}`, match: errors.ErrInvalidConfig},
		{name: "bad blank policy", file: "c.yaml", body: "manager:\n  blank_policy: reuse\n", match: errors.ErrInvalidConfig},
		{name: "lru without size", file: "c.json", body: `{"cache": {"max_size": 0}}`, match: errors.ErrInvalidConfig},
		{name: "newer version", file: "c.json", body: `{"version": "2.0.0"}`, match: errors.ErrInvalidConfig},
		{name: "bad env int", file: "c.json", body: `{}`, env: map[string]string{"ONTOGRAPH_METRICS_PORT": "x"}},
		{name: "unsupported extension", file: "c.toml", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(tt.env).LoadFile(writeFile(t, tt.file, tt.body))
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err), "got %v", err)
			if tt.match != nil {
				assert.ErrorIs(t, err, tt.match)
			}
		})
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	for _, name := range []string{"saved.json", "saved.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Manager.LockTimeout = 750 * time.Millisecond
			cfg.Storage = StorageConfig{Backend: BackendMemory}

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, cfg.SaveToFile(path))

			loaded, err := newTestLoader(nil).LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSafeConfig(t *testing.T) {
	sc := NewSafeConfig(nil)
	got := sc.Get()
	got.Log.Level = "debug"
	assert.Equal(t, "info", sc.Get().Log.Level, "Get returns a copy")

	bad := Default()
	bad.Log.Format = "xml"
	assert.Error(t, sc.Update(bad))
	assert.Error(t, sc.Update(nil))

	good := Default()
	good.Log.Level = "warn"
	require.NoError(t, sc.Update(good))
	assert.Equal(t, "warn", sc.Get().Log.Level)
}

func TestStorageConfig_OpenStore(t *testing.T) {
	ctx := context.Background()

	none, err := StorageConfig{Backend: BackendNone}.OpenStore(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	mem, err := StorageConfig{Backend: BackendMemory}.OpenStore(ctx)
	require.NoError(t, err)
	require.NotNil(t, mem)
	assert.NoError(t, mem.Close())

	db, err := StorageConfig{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "g.db")}.OpenStore(ctx)
	require.NoError(t, err)
	assert.NoError(t, db.Close())

	_, err = StorageConfig{Backend: "tape"}.OpenStore(ctx)
	assert.True(t, errors.IsInvalidArgument(err))
}
