package state

// Package state contains simple hand-written test doubles for the storage and
// navigation ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.StateStore = (*MemoryStateStore)(nil)
	_ ports.Navigator  = (*RecordingNavigator)(nil)
)

// MemoryStateStore is an in-memory StateStore that counts calls and can be
// forced to fail.
type MemoryStateStore struct {
	mu   sync.Mutex
	data map[string][]byte

	LoadErr   error
	SaveErr   error
	DeleteErr error

	Saves   int
	Deletes int
}

// NewMemoryStateStore creates an empty store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{data: make(map[string][]byte)}
}

func (m *MemoryStateStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ports.ErrStateNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryStateStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStateStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.data, key)
	return nil
}

// Put seeds raw bytes under key.
func (m *MemoryStateStore) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = data
}

// Has reports whether key is present.
func (m *MemoryStateStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// RecordingNavigator records every navigation request.
type RecordingNavigator struct {
	mu    sync.Mutex
	Paths []string
}

func (n *RecordingNavigator) Navigate(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Paths = append(n.Paths, path)
}

// Last returns the most recent path or "".
func (n *RecordingNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Paths) == 0 {
		return ""
	}
	return n.Paths[len(n.Paths)-1]
}
