package ports

// Package ports defines interfaces (hexagonal ports) the stores depend on.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
)

// ErrStateNotFound is returned by StateStore.Load when nothing is stored under the key.
var ErrStateNotFound = errors.New("state not found")

// StateStore persists small client-side snapshots (session, cart) between runs.
type StateStore interface {
	// Load returns the raw bytes stored under key or ErrStateNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces whatever is stored under key.
	Save(ctx context.Context, key string, data []byte) error
	// Delete removes the key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
