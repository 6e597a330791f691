// Package order orchestrates order placement and lifecycle. Entity guards in
// internal/domain stay authoritative for transitions; OrderRules backs the
// total-consistency checks.
package order

import (
	"context"
	"errors"
	"log/slog"

	"backoffice/internal/domain"
	ordermetrics "backoffice/internal/order/metrics"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/events"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/requestcontext"
)

// Store persists orders with their items and payment reference. Order number
// uniqueness is enforced at the store.
type Store interface {
	CreateIfNumberAvailable(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	AppendItem(ctx context.Context, orderID id.OrderID, item *domain.OrderItem) error
	AttachPayment(ctx context.Context, orderID id.OrderID, payment *domain.Payment) error
}

// MemberStore is the read side of the member module this service needs.
type MemberStore interface {
	FindByID(ctx context.Context, memberID id.MemberID) (*domain.Member, error)
}

// ItemInput describes one order line at placement time.
type ItemInput struct {
	ProductName        string
	ProductDescription string
	Quantity           int
	UnitPrice          domain.Money
}

// PlaceRequest carries the validated inputs for order placement.
type PlaceRequest struct {
	MemberID    id.MemberID
	OrderNumber string
	TotalAmount domain.Money
	Items       []ItemInput
}

// TotalValidation reports whether an order's declared total matches the sum
// of its item totals.
type TotalValidation struct {
	Valid           bool
	DeclaredTotal   domain.Money
	CalculatedTotal domain.Money
}

// Service orchestrates order operations.
type Service struct {
	orders    Store
	members   MemberStore
	rules     domain.OrderRules
	logger    *slog.Logger
	publisher events.Publisher
	metrics   *ordermetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *ordermetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithRules(rules domain.OrderRules) Option {
	return func(s *Service) { s.rules = rules }
}

func NewService(orders Store, members MemberStore, opts ...Option) *Service {
	s := &Service{
		orders:  orders,
		members: members,
		rules:   domain.NewOrderRules(domain.SettlementCurrency),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place creates a pending order for a member, with its initial items.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (*domain.Order, error) {
	member, err := s.members.FindByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}

	order, err := domain.NewOrder(id.NewOrderID(), req.OrderNumber, member, req.TotalAmount, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	for _, input := range req.Items {
		item, err := domain.NewOrderItem(input.ProductName, input.ProductDescription, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		if err := order.AddItem(item); err != nil {
			return nil, err
		}
	}
	if err := member.AddOrder(order); err != nil {
		return nil, err
	}

	if err := s.orders.CreateIfNumberAvailable(ctx, order); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "order number must be unique")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create order")
	}

	s.emit(ctx, events.EventOrderCreated, order)
	if s.metrics != nil {
		s.metrics.IncrementOrdersPlaced()
	}
	return order, nil
}

// Get returns an order by id.
func (s *Service) Get(ctx context.Context, orderID id.OrderID) (*domain.Order, error) {
	if orderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "order id is required")
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapOrderErr(err)
	}
	return order, nil
}

// Confirm moves a pending order to CONFIRMED.
func (s *Service) Confirm(ctx context.Context, orderID id.OrderID) (*domain.Order, error) {
	return s.transition(ctx, orderID, events.EventOrderConfirmed, (*domain.Order).Confirm)
}

// Cancel moves a non-completed order to CANCELLED.
func (s *Service) Cancel(ctx context.Context, orderID id.OrderID) (*domain.Order, error) {
	order, err := s.transition(ctx, orderID, events.EventOrderCancelled, (*domain.Order).Cancel)
	if err == nil && s.metrics != nil {
		s.metrics.IncrementOrdersCancelled()
	}
	return order, err
}

// Complete moves a confirmed order to COMPLETED.
func (s *Service) Complete(ctx context.Context, orderID id.OrderID) (*domain.Order, error) {
	order, err := s.transition(ctx, orderID, events.EventOrderCompleted, (*domain.Order).Complete)
	if err == nil && s.metrics != nil {
		s.metrics.IncrementOrdersCompleted()
	}
	return order, err
}

func (s *Service) transition(ctx context.Context, orderID id.OrderID, eventType events.EventType, apply func(*domain.Order) error) (*domain.Order, error) {
	if orderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "order id is required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapOrderErr(err)
	}
	if err := apply(order); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, wrapOrderErr(err)
	}

	s.emit(ctx, eventType, order)
	return order, nil
}

// AddItem appends a line item to an existing order.
func (s *Service) AddItem(ctx context.Context, orderID id.OrderID, input ItemInput) (*domain.Order, error) {
	if orderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "order id is required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapOrderErr(err)
	}

	item, err := domain.NewOrderItem(input.ProductName, input.ProductDescription, input.Quantity, input.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := order.AddItem(item); err != nil {
		return nil, err
	}
	if err := s.orders.AppendItem(ctx, orderID, item); err != nil {
		return nil, wrapOrderErr(err)
	}
	return order, nil
}

// ValidateTotal compares the order's declared total against the sum of its
// item totals in the settlement currency.
func (s *Service) ValidateTotal(ctx context.Context, orderID id.OrderID) (*TotalValidation, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	calculated, err := s.rules.CalculateOrderTotal(order)
	if err != nil {
		return nil, err
	}
	valid, err := s.rules.ValidateOrderTotal(order)
	if err != nil {
		return nil, err
	}
	return &TotalValidation{
		Valid:           valid,
		DeclaredTotal:   order.TotalAmount(),
		CalculatedTotal: calculated,
	}, nil
}

// emit publishes fire-and-forget: a failing sink is logged, never surfaced.
func (s *Service) emit(ctx context.Context, eventType events.EventType, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	attributes := map[string]string{
		"order_number": order.OrderNumber(),
		"member_id":    order.Member().ID().String(),
		"status":       string(order.Status()),
		"total_amount": order.TotalAmount().String(),
	}
	if actor := requestcontext.Actor(ctx); actor != "" {
		attributes["actor"] = actor
	}
	err := s.publisher.Publish(ctx, events.Event{
		Type:        eventType,
		AggregateID: order.ID().String(),
		Attributes:  attributes,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"event", string(eventType),
			"order_id", order.ID(),
			"error", err,
		)
	}
}

func wrapOrderErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "order not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "order store failure")
}
