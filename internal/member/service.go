// Package member orchestrates member registration and lifecycle. Domain rules
// live on the entities in internal/domain; this layer adds persistence,
// uniqueness enforcement, and event emission.
package member

import (
	"context"
	"errors"
	"log/slog"

	"backoffice/internal/domain"
	membermetrics "backoffice/internal/member/metrics"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/events"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/requestcontext"
)

// Store persists members. Email uniqueness is enforced at the store so the
// check and the insert stay atomic.
type Store interface {
	CreateIfEmailAvailable(ctx context.Context, member *domain.Member) error
	FindByID(ctx context.Context, memberID id.MemberID) (*domain.Member, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
}

// RegisterRequest carries the validated inputs for member registration.
type RegisterRequest struct {
	Email domain.Email
	Name  string
	Phone domain.PhoneNumber
}

// Service orchestrates member operations.
type Service struct {
	store     Store
	logger    *slog.Logger
	publisher events.Publisher
	metrics   *membermetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *membermetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an active member. The email must not already be registered.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Member, error) {
	member, err := domain.NewMember(id.NewMemberID(), req.Email, req.Name, req.Phone, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateIfEmailAvailable(ctx, member); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create member")
	}

	s.emit(ctx, events.EventMemberCreated, member)
	if s.metrics != nil {
		s.metrics.IncrementMembersRegistered()
	}
	return member, nil
}

// Get returns a member by id.
func (s *Service) Get(ctx context.Context, memberID id.MemberID) (*domain.Member, error) {
	if memberID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "member id is required")
	}
	member, err := s.store.FindByID(ctx, memberID)
	if err != nil {
		return nil, wrapMemberErr(err)
	}
	return member, nil
}

// Activate sets the member ACTIVE. The transition itself is unconditional;
// an already-active member activates again without error.
func (s *Service) Activate(ctx context.Context, memberID id.MemberID) (*domain.Member, error) {
	return s.transition(ctx, memberID, events.EventMemberActivated, (*domain.Member).Activate)
}

// Deactivate sets the member INACTIVE. Idempotent like Activate.
func (s *Service) Deactivate(ctx context.Context, memberID id.MemberID) (*domain.Member, error) {
	return s.transition(ctx, memberID, events.EventMemberDeactivated, (*domain.Member).Deactivate)
}

func (s *Service) transition(ctx context.Context, memberID id.MemberID, eventType events.EventType, apply func(*domain.Member)) (*domain.Member, error) {
	if memberID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "member id is required")
	}

	member, err := s.store.FindByID(ctx, memberID)
	if err != nil {
		return nil, wrapMemberErr(err)
	}

	apply(member)
	if err := s.store.Update(ctx, member); err != nil {
		return nil, wrapMemberErr(err)
	}

	s.emit(ctx, eventType, member)
	return member, nil
}

// emit publishes fire-and-forget: a failing sink is logged, never surfaced.
func (s *Service) emit(ctx context.Context, eventType events.EventType, member *domain.Member) {
	if s.publisher == nil {
		return
	}
	attributes := map[string]string{
		"email":  member.Email().String(),
		"status": string(member.Status()),
	}
	if actor := requestcontext.Actor(ctx); actor != "" {
		attributes["actor"] = actor
	}
	err := s.publisher.Publish(ctx, events.Event{
		Type:        eventType,
		AggregateID: member.ID().String(),
		Attributes:  attributes,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"event", string(eventType),
			"member_id", member.ID(),
			"error", err,
		)
	}
}

func wrapMemberErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "member not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "member store failure")
}
