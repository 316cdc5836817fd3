package store

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(blob), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = slices.Clone(blob)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
