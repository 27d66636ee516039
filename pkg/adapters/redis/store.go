// Package redis provides a MirrorStore backed by Redis hashes, so
// mirrored substance state survives the process and is inspectable with
// standard tooling.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.MirrorStore using one Redis hash per source
// substance.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration applied to a source's hash on each write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for mirrored state.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "rhizome:mirror:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(src string) string {
	return s.prefix + src
}

// Record stores one mirrored write as a hash field. Values are JSON
// encoded; []byte mirrors round-trip as base64 strings, which is
// acceptable for an inspection surface.
func (s *Store) Record(ctx context.Context, src, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis mirror: marshal %s/%s: %w", src, key, err)
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.key(src), key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(src), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis mirror: record %s/%s: %w", src, key, err)
	}
	return nil
}

// Load returns the recorded state for src.
func (s *Store) Load(ctx context.Context, src string) (map[string]any, error) {
	raw, err := s.client.HGetAll(ctx, s.key(src)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mirror: load %s: %w", src, err)
	}

	out := make(map[string]any, len(raw))
	for key, data := range raw {
		var value any
		if err := json.Unmarshal([]byte(data), &value); err != nil {
			return nil, fmt.Errorf("redis mirror: unmarshal %s/%s: %w", src, key, err)
		}
		out[key] = value
	}
	return out, nil
}

// Sources lists substances with mirrored state by scanning the prefix.
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	var (
		sources []string
		cursor  uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mirror: scan: %w", err)
		}
		for _, key := range keys {
			sources = append(sources, strings.TrimPrefix(key, s.prefix))
		}
		cursor = next
		if cursor == 0 {
			return sources, nil
		}
	}
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
