package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	txcontext "backoffice/pkg/platform/tx"
)

// PostgresStore implements Store using the transactional outbox pattern.
// Events are written to the outbox table in the caller's transaction and
// relayed to Kafka by the outbox worker; consumers materialize them back
// into domain_events for querying.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// outboxPayload is the JSON structure relayed to Kafka. Field names match
// Event so the consumer can deserialize without a mapping layer.
type outboxPayload struct {
	ID          string            `json:"ID"`
	Type        string            `json:"Type"`
	OccurredAt  string            `json:"OccurredAt"`
	AggregateID string            `json:"AggregateID"`
	Attributes  map[string]string `json:"Attributes,omitempty"`
}

// Append writes a domain event to the outbox table.
func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	payload := outboxPayload{
		ID:          event.ID.String(),
		Type:        string(event.Type),
		OccurredAt:  event.OccurredAt.Format(time.RFC3339Nano),
		AggregateID: event.AggregateID,
		Attributes:  event.Attributes,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.New(), // outbox entry ID
		string(event.Type.Aggregate()),
		event.AggregateID,
		string(event.Type),
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// AppendWithID materializes a relayed event into the domain_events table.
// Used by the Kafka consumer; idempotent via ON CONFLICT DO NOTHING.
func (s *PostgresStore) AppendWithID(ctx context.Context, eventID uuid.UUID, event Event) error {
	attrBytes, err := json.Marshal(event.Attributes)
	if err != nil {
		return fmt.Errorf("marshal event attributes: %w", err)
	}

	query := `
		INSERT INTO domain_events (id, event_type, occurred_at, aggregate_type, aggregate_id, attributes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		eventID,
		string(event.Type),
		event.OccurredAt,
		string(event.Type.Aggregate()),
		event.AggregateID,
		attrBytes,
	)
	if err != nil {
		return fmt.Errorf("insert domain event: %w", err)
	}
	return nil
}

// ListByAggregate returns events for one aggregate, oldest first.
func (s *PostgresStore) ListByAggregate(ctx context.Context, aggregateID string) ([]Event, error) {
	query := `
		SELECT id, event_type, occurred_at, aggregate_id, attributes
		FROM domain_events
		WHERE aggregate_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("query domain events: %w", err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, event_type, occurred_at, aggregate_id, attributes
		FROM domain_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query domain events: %w", err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

func (s *PostgresStore) scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event

	for rows.Next() {
		var (
			event     Event
			eventType string
			attrBytes []byte
		)
		err := rows.Scan(&event.ID, &eventType, &event.OccurredAt, &event.AggregateID, &attrBytes)
		if err != nil {
			return nil, fmt.Errorf("scan domain event: %w", err)
		}

		event.Type = EventType(eventType)
		if len(attrBytes) > 0 {
			if err := json.Unmarshal(attrBytes, &event.Attributes); err != nil {
				return nil, fmt.Errorf("unmarshal event attributes: %w", err)
			}
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain events: %w", err)
	}
	return events, nil
}
