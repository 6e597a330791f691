package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePublisher_FillsDefaults(t *testing.T) {
	store := NewInMemoryStore()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	pub := NewStorePublisher(store, WithClock(func() time.Time { return fixed }))

	err := pub.Publish(context.Background(), Event{
		Type:        EventOrderCreated,
		AggregateID: "order-1",
	})
	require.NoError(t, err)

	stored, err := store.ListByAggregate(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotEqual(t, uuid.Nil, stored[0].ID)
	assert.Equal(t, fixed, stored[0].OccurredAt)
}

func TestStorePublisher_PreservesExplicitFields(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewStorePublisher(store)

	eventID := uuid.New()
	occurred := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	err := pub.Publish(context.Background(), Event{
		ID:          eventID,
		Type:        EventPaymentProcessed,
		OccurredAt:  occurred,
		AggregateID: "payment-1",
		Attributes:  map[string]string{"transaction_id": "TXN-1"},
	})
	require.NoError(t, err)

	stored, err := pub.List(context.Background(), "payment-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, eventID, stored[0].ID)
	assert.Equal(t, occurred, stored[0].OccurredAt)
	assert.Equal(t, "TXN-1", stored[0].Attributes["transaction_id"])
}

func TestInMemoryStore_SeparatesAggregates(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Type: EventOrderCreated, AggregateID: "order-1"}))
	require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Type: EventOrderConfirmed, AggregateID: "order-1"}))
	require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Type: EventMemberCreated, AggregateID: "member-1"}))

	orderEvents, err := store.ListByAggregate(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, orderEvents, 2)
	assert.Equal(t, EventOrderCreated, orderEvents[0].Type)
	assert.Equal(t, EventOrderConfirmed, orderEvents[1].Type)

	memberEvents, err := store.ListByAggregate(ctx, "member-1")
	require.NoError(t, err)
	require.Len(t, memberEvents, 1)
}

func TestInMemoryStore_ListRecent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, eventType := range []EventType{EventOrderCreated, EventOrderConfirmed, EventOrderCompleted} {
		require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Type: eventType, AggregateID: "order-1"}))
	}

	recent, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, EventOrderConfirmed, recent[0].Type)
	assert.Equal(t, EventOrderCompleted, recent[1].Type)
}

func TestWorker_DrainsInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 10)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	pub := NewChannelPublisher(inbox)
	require.NoError(t, pub.Publish(ctx, Event{ID: uuid.New(), Type: EventPaymentFailed, AggregateID: "payment-1"}))
	require.NoError(t, pub.Publish(ctx, Event{ID: uuid.New(), Type: EventPaymentProcessed, AggregateID: "payment-1"}))

	assert.Eventually(t, func() bool {
		stored, err := store.ListByAggregate(context.Background(), "payment-1")
		return err == nil && len(stored) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestChannelPublisher_RespectsContext(t *testing.T) {
	inbox := make(chan Event) // unbuffered, nobody reading
	pub := NewChannelPublisher(inbox)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Publish(ctx, Event{ID: uuid.New(), Type: EventOrderCreated})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEventTypeAggregate(t *testing.T) {
	assert.Equal(t, AggregateMember, EventMemberDeactivated.Aggregate())
	assert.Equal(t, AggregateOrder, EventOrderCompleted.Aggregate())
	assert.Equal(t, AggregatePayment, EventPaymentRefunded.Aggregate())
	assert.Equal(t, AggregateOrder, EventType("unknown").Aggregate())
}
