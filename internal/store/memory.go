package store

import (
	"context"
	"sync"
)

// MemoryStore is a non-persistent Store used in tests and when no database is configured.
type MemoryStore struct {
	mu    sync.Mutex
	lists map[string][]string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{lists: map[string][]string{}} }

func (m *MemoryStore) Load(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	codes, ok := m.lists[key]
	if !ok {
		return nil, nil
	}
	return append([]string{}, codes...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, codes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append([]string{}, codes...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
