package preference

import (
	"context"
	"sync"
)

// memoryStore is an in-memory preference store.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a new in-memory preference store.
func NewMemoryStore() Store {
	return &memoryStore{
		values: make(map[string]string),
	}
}

// Get returns the stored preference or defaultValue when absent.
func (s *memoryStore) Get(ctx context.Context, scopeKey, defaultValue string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[scopeKey]
	if !ok {
		return defaultValue, nil
	}
	return value, nil
}

// Set stores the preference.
func (s *memoryStore) Set(ctx context.Context, scopeKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[scopeKey] = value
	return nil
}
