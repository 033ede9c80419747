package store

import (
	"sort"
	"sync"

	"nickandperla.net/goryl/internal/value"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string]value.Value
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]value.Value),
	}
}

// Get retrieves a value by name.
func (m *Memory) Get(name string) (value.Value, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[name]
	return v, ok, nil
}

// Put stores a value by name.
func (m *Memory) Put(name string, v value.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = v
	return nil
}

// Delete removes a value by name.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
	return nil
}

// Names lists stored names in ascending order.
func (m *Memory) Names() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
