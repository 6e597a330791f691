package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is an append-only sink for domain events. Implementations must be
// safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAggregate(ctx context.Context, aggregateID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Publisher is the write side handed to application services. Services depend
// on this interface, never on a concrete sink, so wiring stays explicit.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// StorePublisher persists events through a Store. It fills in the identity
// and timestamp defaults so call sites only describe what happened.
type StorePublisher struct {
	store Store
	now   func() time.Time
}

type StorePublisherOption func(*StorePublisher)

// WithClock overrides the timestamp source. Reserved for tests.
func WithClock(now func() time.Time) StorePublisherOption {
	return func(p *StorePublisher) { p.now = now }
}

func NewStorePublisher(store Store, opts ...StorePublisherOption) *StorePublisher {
	p := &StorePublisher{store: store, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *StorePublisher) Publish(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now()
	}
	return p.store.Append(ctx, event)
}

func (p *StorePublisher) List(ctx context.Context, aggregateID string) ([]Event, error) {
	return p.store.ListByAggregate(ctx, aggregateID)
}
