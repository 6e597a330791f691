package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event on the wire. Values double as Kafka record
// keys and outbox event_type columns, so they never change once shipped.
type EventType string

const (
	// Member events
	EventMemberCreated     EventType = "member_created"
	EventMemberActivated   EventType = "member_activated"
	EventMemberDeactivated EventType = "member_deactivated"

	// Order events
	EventOrderCreated   EventType = "order_created"
	EventOrderConfirmed EventType = "order_confirmed"
	EventOrderCancelled EventType = "order_cancelled"
	EventOrderCompleted EventType = "order_completed"

	// Payment events
	EventPaymentCreated   EventType = "payment_created"
	EventPaymentProcessed EventType = "payment_processed"
	EventPaymentFailed    EventType = "payment_failed"
	EventPaymentRefunded  EventType = "payment_refunded"
)

// AggregateKind classifies which entity an event belongs to. It drives topic
// partitioning and lets consumers subscribe per aggregate.
type AggregateKind string

const (
	AggregateMember  AggregateKind = "member"
	AggregateOrder   AggregateKind = "order"
	AggregatePayment AggregateKind = "payment"
)

// eventAggregates maps each event type to the aggregate it mutates.
var eventAggregates = map[EventType]AggregateKind{
	EventMemberCreated:     AggregateMember,
	EventMemberActivated:   AggregateMember,
	EventMemberDeactivated: AggregateMember,

	EventOrderCreated:   AggregateOrder,
	EventOrderConfirmed: AggregateOrder,
	EventOrderCancelled: AggregateOrder,
	EventOrderCompleted: AggregateOrder,

	EventPaymentCreated:   AggregatePayment,
	EventPaymentProcessed: AggregatePayment,
	EventPaymentFailed:    AggregatePayment,
	EventPaymentRefunded:  AggregatePayment,
}

// Aggregate returns the aggregate kind for this event type. Unknown types
// default to AggregateOrder, the busiest stream.
func (t EventType) Aggregate() AggregateKind {
	if kind, ok := eventAggregates[t]; ok {
		return kind
	}
	return AggregateOrder
}

// Event is emitted from domain logic to capture key state changes. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID          uuid.UUID
	Type        EventType
	OccurredAt  time.Time
	AggregateID string
	// Attributes carries event-specific detail (amounts, statuses, reasons)
	// as flat strings so every sink can serialize it without reflection.
	Attributes map[string]string
}
