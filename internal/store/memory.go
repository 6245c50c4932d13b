package store

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[Collection][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[Collection][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, c Collection) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[c]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), blob...), nil
}

func (s *MemoryStore) Put(_ context.Context, c Collection, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[c] = append([]byte(nil), blob...)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
