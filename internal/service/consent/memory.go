package consent

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (m *MemoryStore) Get(ctx context.Context, visitorID string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[visitorID]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryStore) Put(ctx context.Context, visitorID string, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[visitorID] = r
	return nil
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
