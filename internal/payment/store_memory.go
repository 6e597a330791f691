package payment

import (
	"context"
	"sync"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	"backoffice/pkg/platform/sentinel"
)

// InMemory is the development and test store. Payments are snapshotted on
// every write so callers cannot mutate stored state through a retained
// pointer. One payment per order is enforced here, mirroring the unique
// order_id constraint on the payments table.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.PaymentID]*domain.Payment
	byOrder map[id.OrderID]id.PaymentID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.PaymentID]*domain.Payment),
		byOrder: make(map[id.OrderID]id.PaymentID),
	}
}

// snapshot deep-copies a payment together with its order so the stored
// aggregate is isolated from the caller's.
func snapshot(p *domain.Payment) *domain.Payment {
	o := p.Order()
	m := o.Member()
	member := domain.RehydrateMember(m.ID(), m.Email(), m.Name(), m.Phone(), m.Status(), m.CreatedAt())

	order := domain.RehydrateOrder(o.ID(), o.OrderNumber(), member, o.TotalAmount(), o.Status(), o.CreatedAt())
	for _, item := range o.Items() {
		_ = order.AddItem(domain.RehydrateOrderItem(
			item.ProductName(), item.ProductDescription(), item.Quantity(), item.UnitPrice()))
	}

	copied := domain.RehydratePayment(
		p.ID(), order, p.Amount(), p.Method(), p.Status(), p.TransactionID(), p.FailureReason(), p.CreatedAt())
	_ = order.AttachPayment(copied)
	return copied
}

func (s *InMemory) Create(_ context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID := payment.Order().ID()
	if _, exists := s.byOrder[orderID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[payment.ID()] = snapshot(payment)
	s.byOrder[orderID] = payment.ID()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, paymentID id.PaymentID) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.byID[paymentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return snapshot(payment), nil
}

func (s *InMemory) Update(_ context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[payment.ID()]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[payment.ID()] = snapshot(payment)
	return nil
}
