package coach

import "sync"

// MemoryStore is the default IndexStore: process-local last-index tracking,
// also substituted in tests for deterministic runs.
type MemoryStore struct {
	mu      sync.RWMutex
	indexes map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{indexes: make(map[string]int)}
}

func (m *MemoryStore) LastIndex(key string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	index, ok := m.indexes[key]
	return index, ok
}

func (m *MemoryStore) SetLastIndex(key string, index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexes[key] = index
}

var _ IndexStore = (*MemoryStore)(nil)
