package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps the table in a single Redis string, gzip'd in the same
// text encoding FileStore uses. Handy when several machines share one cache.
type RedisStore struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKey sets the Redis key. Default "anglefinder:camera:snaps".
func WithKey(key string) RedisOption {
	return func(s *RedisStore) {
		s.key = key
	}
}

// WithTTL sets an expiration on the stored table. Zero (default) keeps it forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore connects to address with the given options.
func NewRedisStore(address, password string, db int, opts ...RedisOption) *RedisStore {
	return NewRedisStoreFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    "anglefinder:camera:snaps",
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fetches and decodes the table.
func (s *RedisStore) Load(ctx context.Context) (*Table, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrCacheMiss
		}

		return nil, fmt.Errorf("camera: redis get %q: %w", s.key, err)
	}

	return decodeGzip(bytes.NewReader(data))
}

// Save encodes and stores the table.
func (s *RedisStore) Save(ctx context.Context, t *Table) error {
	var buf bytes.Buffer
	if err := encodeGzip(&buf, t); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, buf.Bytes(), s.ttl).Err(); err != nil {
		return fmt.Errorf("camera: redis set %q: %w", s.key, err)
	}

	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
