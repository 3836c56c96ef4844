package kvstore

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process driver.
type Memory struct {
	mu          sync.Mutex
	collections map[string]*memoryBackend
	closed      bool
}

// NewMemory creates an empty in-memory driver.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memoryBackend)}
}

// Open implements Driver.
func (m *Memory) Open(_ context.Context, collection string) (Backend, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	b, ok := m.collections[collection]
	if !ok {
		b = &memoryBackend{data: make(map[string][]byte)}
		m.collections[collection] = b
	}
	return b, nil
}

// Close implements Driver.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (b *memoryBackend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), value...)
	return nil
}

func (b *memoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *memoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func (b *memoryBackend) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedKeys(b.data), nil
}

func (b *memoryBackend) Destroy(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make(map[string][]byte)
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
