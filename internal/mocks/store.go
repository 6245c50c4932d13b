package mocks

import (
	"context"

	"github.com/fact-check-board/internal/store"
)

// MockStore is an in-memory Store with error injection
type MockStore struct {
	*store.MemoryStore
	GetError  error
	PutError  error
	PingError error
	// FailPutOn makes Put fail for a single collection
	FailPutOn map[store.Collection]error
	PutCalls  []store.Collection
	// HonorContext makes Get and Put fail once ctx is done, like the network backends
	HonorContext bool
	// AfterPut runs after every successful Put
	AfterPut func(c store.Collection)
}

// Verify interface compliance
var _ store.Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{
		MemoryStore: store.NewMemoryStore(),
		FailPutOn:   make(map[store.Collection]error),
	}
}

func (m *MockStore) Get(ctx context.Context, c store.Collection) ([]byte, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	if m.HonorContext {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return m.MemoryStore.Get(ctx, c)
}

func (m *MockStore) Put(ctx context.Context, c store.Collection, blob []byte) error {
	m.PutCalls = append(m.PutCalls, c)
	if m.PutError != nil {
		return m.PutError
	}
	if err, ok := m.FailPutOn[c]; ok {
		return err
	}
	if m.HonorContext {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := m.MemoryStore.Put(ctx, c, blob); err != nil {
		return err
	}
	if m.AfterPut != nil {
		m.AfterPut(c)
	}
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.PingError
}
