package mocks

import (
	"context"
	"sync"

	"github.com/fact-check-board/internal/events"
)

// MockPublisher records published vote events
type MockPublisher struct {
	mu       sync.Mutex
	Events   []events.VoteEvent
	Err      error
	IsClosed bool
}

// Verify interface compliance
var _ events.Publisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishVote(ctx context.Context, event events.VoteEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IsClosed = true
	return nil
}

// Published returns a copy of the recorded events
func (m *MockPublisher) Published() []events.VoteEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]events.VoteEvent(nil), m.Events...)
}
