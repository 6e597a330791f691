package events

import (
	"context"
	"sync"
)

// InMemoryStore keeps events per aggregate. Used by tests and the dev server.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
	order  []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]Event)
	s.order = nil
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.AggregateID] = append(s.events[event.AggregateID], event)
	s.order = append(s.order, event)
	return nil
}

func (s *InMemoryStore) ListByAggregate(_ context.Context, aggregateID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[aggregateID]...), nil
}

// ListRecent returns the last N appended events, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.order) - limit
	if start < 0 {
		start = 0
	}
	return append([]Event{}, s.order[start:]...), nil
}
