package domain

import (
	"strings"
	"time"

	dErrors "backoffice/pkg/domain-errors"
	id "backoffice/pkg/domain"
)

// OrderStatus is the order lifecycle state.
//
// Transitions: PENDING → CONFIRMED → COMPLETED, with PENDING|CONFIRMED →
// CANCELLED as a side branch. CANCELLED and COMPLETED are terminal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a status read from storage or transport.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown order status: %q", raw)
	}
}

// Order is the aggregate root for a purchase. It owns its items and its
// optional payment; both are destroyed with the order. The total amount is
// supplied at construction and is not derived from items — consistency
// between the two is checked explicitly through OrderRules.
type Order struct {
	id          id.OrderID
	orderNumber string
	member      *Member
	totalAmount Money
	status      OrderStatus
	items       []*OrderItem
	payment     *Payment
	createdAt   time.Time
}

func NewOrder(orderID id.OrderID, orderNumber string, member *Member, totalAmount Money, now time.Time) (*Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order number cannot be blank")
	}
	if member == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "member cannot be nil")
	}
	if totalAmount.Currency() == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "total amount is required")
	}
	return &Order{
		id:          orderID,
		orderNumber: orderNumber,
		member:      member,
		totalAmount: totalAmount,
		status:      OrderStatusPending,
		createdAt:   now,
	}, nil
}

// RehydrateOrder rebuilds an order from storage in the given state.
func RehydrateOrder(orderID id.OrderID, orderNumber string, member *Member, totalAmount Money, status OrderStatus, createdAt time.Time) *Order {
	return &Order{
		id:          orderID,
		orderNumber: orderNumber,
		member:      member,
		totalAmount: totalAmount,
		status:      status,
		createdAt:   createdAt,
	}
}

// Confirm moves a pending order to CONFIRMED.
func (o *Order) Confirm() error {
	if o.status != OrderStatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"only pending orders can be confirmed, current status: %s", o.status)
	}
	o.status = OrderStatusConfirmed
	return nil
}

// Cancel moves any non-completed order to CANCELLED. Cancelling an already
// cancelled order is permitted and leaves the status unchanged.
func (o *Order) Cancel() error {
	if o.status == OrderStatusCompleted {
		return dErrors.New(dErrors.CodeInvariantViolation, "completed orders cannot be cancelled")
	}
	o.status = OrderStatusCancelled
	return nil
}

// Complete moves a confirmed order to COMPLETED. The cancelled check runs
// first so the caller sees the more specific failure.
func (o *Order) Complete() error {
	if o.status == OrderStatusCancelled {
		return dErrors.New(dErrors.CodeInvariantViolation, "cancelled orders cannot be completed")
	}
	if o.status != OrderStatusConfirmed {
		return dErrors.New(dErrors.CodeInvariantViolation, "only confirmed orders can be completed")
	}
	o.status = OrderStatusCompleted
	return nil
}

// AddItem appends an item and sets its back-reference. Item mutation is
// independent of the order lifecycle, so there is no status guard.
func (o *Order) AddItem(item *OrderItem) error {
	if item == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "order item cannot be nil")
	}
	if err := item.AttachTo(o); err != nil {
		return err
	}
	o.items = append(o.items, item)
	return nil
}

// AttachPayment sets the order's payment. Replacing an existing payment is
// permitted; the last write wins.
func (o *Order) AttachPayment(payment *Payment) error {
	if payment == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "payment cannot be nil")
	}
	o.payment = payment
	return nil
}

func (o *Order) ID() id.OrderID      { return o.id }
func (o *Order) OrderNumber() string { return o.orderNumber }
func (o *Order) Member() *Member     { return o.member }
func (o *Order) TotalAmount() Money  { return o.totalAmount }
func (o *Order) Status() OrderStatus { return o.status }
func (o *Order) Payment() *Payment   { return o.payment }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Items returns a copy of the item list; callers cannot reorder or replace
// the order's own collection.
func (o *Order) Items() []*OrderItem {
	return append([]*OrderItem(nil), o.items...)
}

func (o *Order) ItemCount() int { return len(o.items) }
