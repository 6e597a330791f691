package order

import (
	"context"
	"sync"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	"backoffice/pkg/platform/sentinel"
)

// InMemory is the development and test store. Orders are snapshotted on every
// write so callers cannot mutate stored state through a retained pointer.
type InMemory struct {
	mu       sync.RWMutex
	byID     map[id.OrderID]*domain.Order
	byNumber map[string]id.OrderID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:     make(map[id.OrderID]*domain.Order),
		byNumber: make(map[string]id.OrderID),
	}
}

// snapshot deep-copies an order: member, items, and payment all rebuild onto
// fresh instances so the stored aggregate is isolated from the caller's.
func snapshot(o *domain.Order) *domain.Order {
	m := o.Member()
	member := domain.RehydrateMember(m.ID(), m.Email(), m.Name(), m.Phone(), m.Status(), m.CreatedAt())

	copied := domain.RehydrateOrder(o.ID(), o.OrderNumber(), member, o.TotalAmount(), o.Status(), o.CreatedAt())
	for _, item := range o.Items() {
		_ = copied.AddItem(domain.RehydrateOrderItem(
			item.ProductName(), item.ProductDescription(), item.Quantity(), item.UnitPrice()))
	}
	if p := o.Payment(); p != nil {
		_ = copied.AttachPayment(domain.RehydratePayment(
			p.ID(), copied, p.Amount(), p.Method(), p.Status(), p.TransactionID(), p.FailureReason(), p.CreatedAt()))
	}
	return copied
}

func (s *InMemory) CreateIfNumberAvailable(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byNumber[order.OrderNumber()]; exists {
		return sentinel.ErrConflict
	}
	s.byID[order.ID()] = snapshot(order)
	s.byNumber[order.OrderNumber()] = order.ID()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, orderID id.OrderID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.byID[orderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return snapshot(order), nil
}

func (s *InMemory) UpdateStatus(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[order.ID()]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[order.ID()] = snapshot(order)
	return nil
}

func (s *InMemory) AppendItem(_ context.Context, orderID id.OrderID, item *domain.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[orderID]
	if !ok {
		return sentinel.ErrNotFound
	}
	return stored.AddItem(domain.RehydrateOrderItem(
		item.ProductName(), item.ProductDescription(), item.Quantity(), item.UnitPrice()))
}

func (s *InMemory) AttachPayment(_ context.Context, orderID id.OrderID, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[orderID]
	if !ok {
		return sentinel.ErrNotFound
	}
	return stored.AttachPayment(domain.RehydratePayment(
		payment.ID(), stored, payment.Amount(), payment.Method(), payment.Status(),
		payment.TransactionID(), payment.FailureReason(), payment.CreatedAt()))
}
