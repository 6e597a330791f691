// Package payment orchestrates payment settlement against orders. The entity
// keeps Process and Fail permissive; the stricter gating lives here, where the
// transaction-id reservation and the failed-state check are applied before the
// entity transition runs.
package payment

import (
	"context"
	"errors"
	"log/slog"

	"backoffice/internal/domain"
	paymentmetrics "backoffice/internal/payment/metrics"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/events"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/requestcontext"
)

// Store persists payments. A payment loads with its order rehydrated.
type Store interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, paymentID id.PaymentID) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// OrderStore is the slice of the order module this service needs.
type OrderStore interface {
	FindByID(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
	AttachPayment(ctx context.Context, orderID id.OrderID, payment *domain.Payment) error
}

// IdempotencyStore reserves transaction ids so a gateway retry cannot settle
// the same transaction against two payments.
type IdempotencyStore interface {
	Reserve(ctx context.Context, transactionID string) (bool, error)
}

// CreateRequest carries the validated inputs for payment creation.
type CreateRequest struct {
	OrderID id.OrderID
	Amount  domain.Money
	Method  domain.PaymentMethod
}

// Quote reports whether a method supports an amount and what fee it charges.
type Quote struct {
	Supported bool
	Fee       domain.Money
}

// Service orchestrates payment operations.
type Service struct {
	payments    Store
	orders      OrderStore
	rules       domain.PaymentRules
	idempotency IdempotencyStore
	logger      *slog.Logger
	publisher   events.Publisher
	metrics     *paymentmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *paymentmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithIdempotencyStore(store IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

func NewService(payments Store, orders OrderStore, opts ...Option) *Service {
	s := &Service{
		payments: payments,
		orders:   orders,
		rules:    domain.NewPaymentRules(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create attaches a new pending payment to an order.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Payment, error) {
	order, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "order not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load order")
	}
	if !s.rules.IsPaymentMethodSupported(req.Method, req.Amount) {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"payment method %s does not support amount %s", req.Method, req.Amount)
	}
	if order.Payment() != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "order already has a payment")
	}

	payment, err := domain.NewPayment(id.NewPaymentID(), order, req.Amount, req.Method, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := order.AttachPayment(payment); err != nil {
		return nil, err
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "order already has a payment")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create payment")
	}
	if err := s.orders.AttachPayment(ctx, req.OrderID, payment); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach payment to order")
	}

	s.emit(ctx, events.EventPaymentCreated, payment)
	if s.metrics != nil {
		s.metrics.IncrementPaymentsCreated()
	}
	return payment, nil
}

// Get returns a payment by id.
func (s *Service) Get(ctx context.Context, paymentID id.PaymentID) (*domain.Payment, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment id is required")
	}
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	return payment, nil
}

// Process settles a payment with the gateway transaction id. The entity
// overwrites status from any state, so the failed-state check happens here:
// a FAILED payment must go through a fresh payment, not be re-processed.
func (s *Service) Process(ctx context.Context, paymentID id.PaymentID, transactionID string) (*domain.Payment, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment id is required")
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	if payment.Status() == domain.PaymentStatusFailed {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "failed payments cannot be re-processed")
	}

	if s.idempotency != nil && transactionID != "" {
		reserved, err := s.idempotency.Reserve(ctx, transactionID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "idempotency check failed")
		}
		if !reserved {
			return nil, dErrors.New(dErrors.CodeConflict, "transaction id already used")
		}
	}

	if err := payment.Process(transactionID); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, wrapPaymentErr(err)
	}

	s.emit(ctx, events.EventPaymentProcessed, payment)
	if s.metrics != nil {
		s.metrics.IncrementPaymentsProcessed()
	}
	return payment, nil
}

// MarkFailed records a gateway failure against the payment.
func (s *Service) MarkFailed(ctx context.Context, paymentID id.PaymentID, reason string) (*domain.Payment, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment id is required")
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	if err := payment.Fail(reason); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, wrapPaymentErr(err)
	}

	s.emit(ctx, events.EventPaymentFailed, payment)
	if s.metrics != nil {
		s.metrics.IncrementPaymentsFailed()
	}
	return payment, nil
}

// Refund reverses a completed payment.
func (s *Service) Refund(ctx context.Context, paymentID id.PaymentID) (*domain.Payment, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment id is required")
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	if err := payment.Refund(); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, wrapPaymentErr(err)
	}

	s.emit(ctx, events.EventPaymentRefunded, payment)
	if s.metrics != nil {
		s.metrics.IncrementPaymentsRefunded()
	}
	return payment, nil
}

// QuoteFee reports method support and the processing fee for an amount.
func (s *Service) QuoteFee(_ context.Context, method domain.PaymentMethod, amount domain.Money) (*Quote, error) {
	fee, err := s.rules.ProcessingFee(method, amount)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Supported: s.rules.IsPaymentMethodSupported(method, amount),
		Fee:       fee,
	}, nil
}

// emit publishes fire-and-forget: a failing sink is logged, never surfaced.
func (s *Service) emit(ctx context.Context, eventType events.EventType, payment *domain.Payment) {
	if s.publisher == nil {
		return
	}
	attributes := map[string]string{
		"order_id": payment.Order().ID().String(),
		"method":   string(payment.Method()),
		"status":   string(payment.Status()),
		"amount":   payment.Amount().String(),
	}
	if payment.TransactionID() != "" {
		attributes["transaction_id"] = payment.TransactionID()
	}
	if payment.FailureReason() != "" {
		attributes["failure_reason"] = payment.FailureReason()
	}
	if actor := requestcontext.Actor(ctx); actor != "" {
		attributes["actor"] = actor
	}

	err := s.publisher.Publish(ctx, events.Event{
		Type:        eventType,
		AggregateID: payment.ID().String(),
		Attributes:  attributes,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"event", string(eventType),
			"payment_id", payment.ID(),
			"error", err,
		)
	}
}

func wrapPaymentErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "payment not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "payment store failure")
}
