// Package config loads the ontograph application configuration.
//
// A configuration is built from defaults, then zero or more file layers (JSON or YAML,
// later layers overriding earlier ones key by key), then ONTOGRAPH_* environment
// variables, and is finally validated. Durations may be written as strings ("250ms")
// in either file format.
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("ontograph.yaml")
//	cfg, err := loader.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	mgr, err := manager.New(cfg.ManagerConfig())
//
// # Environment Overrides
//
//	ONTOGRAPH_CONCURRENT       manager.concurrent
//	ONTOGRAPH_LOCK_TIMEOUT     manager.lock_timeout
//	ONTOGRAPH_LOCK_RETRIES     manager.retry.max_retries
//	ONTOGRAPH_BLANK_POLICY     manager.blank_policy
//	ONTOGRAPH_CACHE_ENABLED    cache.enabled
//	ONTOGRAPH_CACHE_STRATEGY   cache.strategy
//	ONTOGRAPH_CACHE_MAX_SIZE   cache.max_size
//	ONTOGRAPH_STORAGE_BACKEND  storage.backend
//	ONTOGRAPH_SQLITE_PATH      storage.sqlite_path
//	ONTOGRAPH_NATS_URL         storage.nats_url
//	ONTOGRAPH_NATS_BUCKET      storage.bucket
//	ONTOGRAPH_LOG_LEVEL        log.level
//	ONTOGRAPH_LOG_FORMAT       log.format
//	ONTOGRAPH_METRICS_PORT     metrics.port
//
// Invalid values, in files or the environment, fail with an error of class invalid
// wrapping errors.ErrInvalidConfig or errors.ErrParsingFailed.
package config
