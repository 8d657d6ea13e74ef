package config

import (
	"context"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/storage"
	"github.com/c360/ontograph/storage/natskv"
	"github.com/c360/ontograph/storage/sqlite"
)

// OpenStore opens the configured backend. It returns nil when persistence is disabled.
func (s StorageConfig) OpenStore(ctx context.Context) (storage.Store, error) {
	switch s.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return storage.NewMemory(), nil
	case BackendSQLite:
		return opened(sqlite.NewStore(s.SQLitePath))
	case BackendNATS:
		return opened(natskv.Connect(ctx, s.NATSURL, s.Bucket))
	default:
		return nil, errors.InvalidArgument("config", "OpenStore", "unknown storage backend %q", s.Backend)
	}
}

// opened keeps a failed open from returning a typed nil store
func opened[S storage.Store](store S, err error) (storage.Store, error) {
	if err != nil {
		return nil, err
	}
	return store, nil
}
