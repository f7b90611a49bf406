package redis

// Package redis provides Redis-based adapters for the storefront client.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// DefaultPrefix namespaces state keys when no prefix is configured.
const DefaultPrefix = "shoestore:"

// StateStore keeps persisted client state (session and cart snapshots) in Redis.
type StateStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// StateStoreOptions configures a StateStore.
type StateStoreOptions struct {
	// Prefix is prepended to every key. Empty means DefaultPrefix.
	Prefix string
	// TTL expires keys after the given duration. Zero keeps them until deleted.
	TTL time.Duration
}

// NewStateStore creates a Redis-based state store.
func NewStateStore(client redis.UniversalClient, opts StateStoreOptions) *StateStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &StateStore{client: client, prefix: prefix, ttl: opts.TTL}
}

// Load returns the bytes stored under key or ports.ErrStateNotFound.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ports.ErrStateNotFound
	}
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrStateNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Save stores data under key, replacing any previous value.
func (s *StateStore) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return errors.New("state key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ ports.StateStore = (*StateStore)(nil)
