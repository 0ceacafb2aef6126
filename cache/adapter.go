package cache

import (
	"context"
	"sync"
)

// Adapter provides durable backing for a Store.
// Implementations must be safe for concurrent use.
type Adapter interface {
	// Read returns the stored bytes for key, or ok=false if absent.
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Write stores bytes under key, overwriting any previous value.
	Write(ctx context.Context, key string, data []byte) error

	// Remove deletes the stored bytes for key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
}

// MemoryAdapter is an in-memory Adapter, useful for testing persistence
// behavior without touching the filesystem.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		data: make(map[string][]byte),
	}
}

// Read returns the stored bytes for key.
func (m *MemoryAdapter) Read(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Write stores bytes under key.
func (m *MemoryAdapter) Write(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[key] = cp
	return nil
}

// Remove deletes the stored bytes for key.
func (m *MemoryAdapter) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryAdapter) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
