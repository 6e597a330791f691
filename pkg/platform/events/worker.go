package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Worker consumes domain events from a channel and persists them. An optional
// sink (usually Kafka) receives each event after the store append succeeds;
// the store stays the source of truth, so sink failures are logged and the
// loop continues.
type Worker struct {
	store  Store
	inbox  <-chan Event
	sink   Publisher
	logger *slog.Logger
}

type WorkerOption func(*Worker)

// WithSink forwards each persisted event to an external sink.
func WithSink(sink Publisher) WorkerOption {
	return func(w *Worker) { w.sink = sink }
}

// WithWorkerLogger overrides the default logger.
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) { w.logger = logger }
}

func NewWorker(store Store, inbox <-chan Event, opts ...WorkerOption) *Worker {
	w := &Worker{store: store, inbox: inbox, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if event.ID == uuid.Nil {
				event.ID = uuid.New()
			}
			if event.OccurredAt.IsZero() {
				event.OccurredAt = time.Now()
			}
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
			if w.sink != nil {
				if err := w.sink.Publish(ctx, event); err != nil {
					w.logger.WarnContext(ctx, "event sink publish failed",
						"event", string(event.Type),
						"event_id", event.ID,
						"error", err,
					)
				}
			}
		}
	}
}

// ChannelPublisher feeds a Worker inbox. Publish never blocks the caller
// longer than the context allows.
type ChannelPublisher struct {
	outbox chan<- Event
}

func NewChannelPublisher(outbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{outbox: outbox}
}

func (p *ChannelPublisher) Publish(ctx context.Context, event Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.outbox <- event:
		return nil
	}
}
