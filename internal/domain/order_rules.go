package domain

import (
	dErrors "backoffice/pkg/domain-errors"
)

// SettlementCurrency is the single currency used for order and payment
// arithmetic in the rule evaluators.
const SettlementCurrency = "KRW"

// OrderRules evaluates cross-entity business rules over orders. It is
// stateless apart from the settlement currency, reads entity state, and never
// mutates it.
//
// Note: CanCompleteOrder requires status PENDING while Order.Complete
// requires CONFIRMED. The two rule sets intentionally disagree; unifying them
// is a product decision, not a code cleanup. See the acceptance test in
// lifecycle_guards_test.go.
type OrderRules struct {
	currency string
}

func NewOrderRules(currency string) OrderRules {
	if currency == "" {
		currency = SettlementCurrency
	}
	return OrderRules{currency: currency}
}

// CalculateOrderTotal sums the item totals. Fails when the order has no
// items: an empty order has no meaningful total, and silently returning zero
// would make ValidateOrderTotal pass for a zero-amount order.
func (r OrderRules) CalculateOrderTotal(order *Order) (Money, error) {
	if order == nil {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "order cannot be nil")
	}
	items := order.Items()
	if len(items) == 0 {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "order has no items")
	}
	total := ZeroMoney(r.currency)
	for _, item := range items {
		sum, err := total.Add(item.TotalPrice())
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}

// ValidateOrderTotal reports whether the declared order total matches the sum
// of its item totals, currency-aware.
func (r OrderRules) ValidateOrderTotal(order *Order) (bool, error) {
	calculated, err := r.CalculateOrderTotal(order)
	if err != nil {
		return false, err
	}
	equal, err := calculated.Equals(order.TotalAmount())
	if err != nil {
		// Different currency means the totals cannot match.
		return false, nil
	}
	return equal, nil
}

// CanCancelOrder permits cancellation of pending orders whose payment has not
// completed.
func (r OrderRules) CanCancelOrder(order *Order) bool {
	if order == nil || order.Status() != OrderStatusPending {
		return false
	}
	payment := order.Payment()
	return payment == nil || payment.Status() != PaymentStatusCompleted
}

// CanCompleteOrder permits completion of pending orders with a completed
// payment whose amount matches the order total.
func (r OrderRules) CanCompleteOrder(order *Order) bool {
	if order == nil || order.Status() != OrderStatusPending {
		return false
	}
	payment := order.Payment()
	if payment == nil || payment.Status() != PaymentStatusCompleted {
		return false
	}
	equal, err := order.TotalAmount().Equals(payment.Amount())
	return err == nil && equal
}

// CalculateMemberTotalSpent sums the total amount of completed orders.
func (r OrderRules) CalculateMemberTotalSpent(orders []*Order) (Money, error) {
	total := ZeroMoney(r.currency)
	for _, order := range orders {
		if order.Status() != OrderStatusCompleted {
			continue
		}
		sum, err := total.Add(order.TotalAmount())
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}

// QualifiesForDiscount reports whether the order total meets the threshold.
func (r OrderRules) QualifiesForDiscount(order *Order, threshold Money) (bool, error) {
	if order == nil {
		return false, dErrors.New(dErrors.CodeInvalidInput, "order cannot be nil")
	}
	return order.TotalAmount().GreaterThanOrEqual(threshold)
}
