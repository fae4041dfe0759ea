// internal/store/kv.go
//
// Key-value persistence boundary for per-installation state.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
//
// Characteristics:
//   - Values are opaque byte slices; a Set is observed all-or-nothing by any
//     Get that begins after it returns.
//   - No multi-key transactional guarantee is offered or needed.

package store

import (
	"context"
	"sync"
)

// KV is the persistence interface for installation-scoped records.
type KV interface {
	// Get returns the stored value for key; ok is false if absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu   sync.RWMutex // guards values map
	vals map[string][]byte
}

// NewMemoryKV constructs a new in-memory KV.
func NewMemoryKV() KV {
	return &memory{vals: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = cp
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, key)
	return nil
}
