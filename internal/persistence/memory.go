package persistence

import (
	"context"
	"sync"
)

// Memory is an in-process KeyValue used by tests and by the demo storage
// backend. Values are copied on the way in and out.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Ping always succeeds; the store lives in-process.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}
