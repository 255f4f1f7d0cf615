package conversation

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore keeps conversations in process memory. Values are stored as
// JSON so callers never share state with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (m *MemoryStore) Create(ctx context.Context, c *Conversation) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[c.ID]; exists {
		return ErrAlreadyExists
	}
	m.items[c.ID] = data
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Conversation, error) {
	m.mu.RLock()
	data, exists := m.items[id]
	m.mu.RUnlock()
	if !exists {
		return nil, ErrNotFound
	}

	var c Conversation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MemoryStore) Save(ctx context.Context, c *Conversation) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[c.ID]; !exists {
		return ErrNotFound
	}
	m.items[c.ID] = data
	return nil
}

func (m *MemoryStore) DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := 0
	for id, data := range m.items {
		var c Conversation
		if err := json.Unmarshal(data, &c); err != nil {
			return changed, err
		}
		if !c.Active || !c.UpdatedAt.Before(cutoff) {
			continue
		}
		c.Active = false
		updated, err := json.Marshal(&c)
		if err != nil {
			return changed, err
		}
		m.items[id] = updated
		changed++
	}
	return changed, nil
}

// Len reports how many conversations are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
