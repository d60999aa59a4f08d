package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("storage: not found")

// KV is the named-record port the gateway persists through.
type KV interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, names ...string) error
}

type MemoryKV struct {
	mu      sync.Mutex
	records map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{records: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.records[name]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemoryKV) Set(_ context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		delete(m.records, name)
	}
	return nil
}
