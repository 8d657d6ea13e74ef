// Package natskv stores named graphs in a NATS JetStream key-value bucket.
//
// Each graph is one entry holding its N-Quads document; the entry key is the graph name.
package natskv

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/pkg/retry"
	"github.com/c360/ontograph/storage"
)

// DefaultBucket is used when no bucket name is configured
const DefaultBucket = "ONTOGRAPH_GRAPHS"

// Options configures the store behavior
type Options struct {
	Timeout      time.Duration // per operation timeout
	MaxValueSize int           // largest encoded graph accepted by Save
	Retry        retry.Config  // retry policy for transient bucket errors
	Logger       *slog.Logger
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		Timeout:      5 * time.Second,
		MaxValueSize: 1024 * 1024, // default NATS max payload
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
			AddJitter:    true,
		},
		Logger: slog.Default(),
	}
}

// Store is a storage.Store backed by a JetStream KV bucket
type Store struct {
	conn    *nats.Conn // nil when the bucket was supplied by the caller
	bucket  jetstream.KeyValue
	options Options
}

var _ storage.Store = (*Store)(nil)

// Connect dials url and opens (creating if needed) the bucket
func Connect(ctx context.Context, url, bucket string, opts ...func(*Options)) (*Store, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	conn, err := nats.Connect(url, nats.Name("ontograph"))
	if err != nil {
		return nil, errors.WrapTransient(fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err),
			"natskv", "Connect", "connect to NATS")
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, errors.WrapFatal(err, "natskv", "Connect", "create JetStream context")
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "ontograph named graphs",
		History:     1,
	})
	if err != nil {
		conn.Close()
		return nil, errors.WrapTransient(err, "natskv", "Connect", fmt.Sprintf("open bucket %s", bucket))
	}

	s := New(kv, opts...)
	s.conn = conn
	return s, nil
}

// New wraps an open bucket. Close does not close the caller's connection.
func New(bucket jetstream.KeyValue, opts ...func(*Options)) *Store {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Store{bucket: bucket, options: options}
}

// applyTimeout applies the configured timeout to the context if set
func (s *Store) applyTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.options.Timeout > 0 {
		return context.WithTimeout(ctx, s.options.Timeout)
	}
	return ctx, func() {} // no-op cancel
}

// Save replaces the document stored under name
func (s *Store) Save(ctx context.Context, name string, statements []graph.Statement) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, statements); err != nil {
		return errors.Wrap(err, "natskv", "Save", "encode graph")
	}
	if s.options.MaxValueSize > 0 && buf.Len() > s.options.MaxValueSize {
		return errors.InvalidArgument("natskv", "Save",
			"graph %q encodes to %d bytes, maximum is %d", name, buf.Len(), s.options.MaxValueSize)
	}

	ctx, cancel := s.applyTimeout(ctx)
	defer cancel()

	var rev uint64
	err := retry.Do(ctx, s.options.Retry, func() error {
		var err error
		rev, err = s.bucket.Put(ctx, name, buf.Bytes())
		return err
	})
	if err != nil {
		return errors.WrapTransient(err, "natskv", "Save", fmt.Sprintf("put %s", name))
	}

	s.options.Logger.Debug("Graph saved", "name", name, "statements", len(statements), "revision", rev)
	return nil
}

// Load decodes the document stored under name. Blank labels are kept as stored.
func (s *Store) Load(ctx context.Context, name string) ([]graph.Statement, error) {
	ctx, cancel := s.applyTimeout(ctx)
	defer cancel()

	entry, err := s.bucket.Get(ctx, name)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, storage.NotFound("natskv", name)
		}
		return nil, errors.WrapTransient(err, "natskv", "Load", fmt.Sprintf("get %s", name))
	}

	statements, err := codec.Decode(ctx, bytes.NewReader(entry.Value()),
		codec.WithBlankPolicy(codec.KeepLabels), codec.WithLogger(s.options.Logger))
	if err != nil {
		return nil, errors.WrapFatal(fmt.Errorf("%w: %v", errors.ErrDataCorrupted, err),
			"natskv", "Load", fmt.Sprintf("decode %s", name))
	}
	return statements, nil
}

// Delete removes name. Missing names are ignored.
func (s *Store) Delete(ctx context.Context, name string) error {
	ctx, cancel := s.applyTimeout(ctx)
	defer cancel()

	if err := s.bucket.Delete(ctx, name); err != nil && !IsNotFoundError(err) {
		return errors.WrapTransient(err, "natskv", "Delete", fmt.Sprintf("delete %s", name))
	}
	return nil
}

// List returns the names in the bucket starting with prefix
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := s.applyTimeout(ctx)
	defer cancel()

	lister, err := s.bucket.ListKeys(ctx)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, errors.WrapTransient(err, "natskv", "List", "list keys")
	}
	defer func() { _ = lister.Stop() }()

	names := []string{}
	for key := range lister.Keys() {
		if strings.HasPrefix(key, prefix) {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close drains the connection opened by Connect
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Drain(); err != nil {
		return errors.WrapTransient(err, "natskv", "Close", "drain connection")
	}
	return nil
}

// IsNotFoundError reports whether err is a missing or deleted key
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, jetstream.ErrKeyNotFound) || stderrors.Is(err, jetstream.ErrKeyDeleted)
}
