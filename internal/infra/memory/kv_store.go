package memory

import (
	"context"
	"strings"
	"sync"

	"ux-career-assessment/internal/domain"
)

// KVStore is an in-memory implementation of domain.KeyValueStore. An
// optional byte quota mimics browser storage limits.
type KVStore struct {
	mu       sync.RWMutex
	data     map[string]string
	size     int
	maxBytes int
}

type KVOption func(*KVStore)

// WithMaxBytes caps the summed length of keys and values. Writes that would
// exceed it fail with domain.ErrQuotaExceeded.
func WithMaxBytes(n int) KVOption {
	return func(s *KVStore) { s.maxBytes = n }
}

func NewKVStore(opts ...KVOption) *KVStore {
	s := &KVStore{data: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.size + len(key) + len(value)
	if old, ok := s.data[key]; ok {
		size -= len(key) + len(old)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return domain.ErrQuotaExceeded
	}
	s.data[key] = value
	s.size = size
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.data[key]; ok {
		s.size -= len(key) + len(old)
		delete(s.data, key)
	}
	return nil
}

func (s *KVStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Len reports the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
