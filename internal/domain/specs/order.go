package specs

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/domain"
	"backoffice/pkg/spec"
)

// OrderSpecification is a composable predicate over orders.
type OrderSpecification = spec.Specification[*domain.Order]

var highValueThreshold = decimal.NewFromInt(100_000)

const (
	bulkOrderMinimumItems = 5
	recentOrderWindow     = 30 * 24 * time.Hour
)

func OrderIsPending() OrderSpecification {
	return func(o *domain.Order) bool { return o.Status() == domain.OrderStatusPending }
}

func OrderIsCompleted() OrderSpecification {
	return func(o *domain.Order) bool { return o.Status() == domain.OrderStatusCompleted }
}

func OrderIsCancelled() OrderSpecification {
	return func(o *domain.Order) bool { return o.Status() == domain.OrderStatusCancelled }
}

// moneyAtLeast compares the numeric amount; a currency mismatch between the
// order total and the bound never satisfies the predicate.
func moneyAtLeast(total domain.Money, bound domain.Money) bool {
	satisfied, err := total.GreaterThanOrEqual(bound)
	return err == nil && satisfied
}

func OrderHasMinimumAmount(minimum domain.Money) OrderSpecification {
	return func(o *domain.Order) bool { return moneyAtLeast(o.TotalAmount(), minimum) }
}

func OrderHasMaximumAmount(maximum domain.Money) OrderSpecification {
	return func(o *domain.Order) bool { return moneyAtLeast(maximum, o.TotalAmount()) }
}

func OrderHasAmountBetween(minimum, maximum domain.Money) OrderSpecification {
	return OrderHasMinimumAmount(minimum).And(OrderHasMaximumAmount(maximum))
}

func OrderCreatedAfter(t time.Time) OrderSpecification {
	return func(o *domain.Order) bool { return o.CreatedAt().After(t) }
}

func OrderCreatedBefore(t time.Time) OrderSpecification {
	return func(o *domain.Order) bool { return o.CreatedAt().Before(t) }
}

func OrderCreatedBetween(from, to time.Time) OrderSpecification {
	return OrderCreatedAfter(from).And(OrderCreatedBefore(to))
}

func OrderHasItems() OrderSpecification {
	return func(o *domain.Order) bool { return o.ItemCount() > 0 }
}

func OrderHasMinimumItems(minimum int) OrderSpecification {
	return func(o *domain.Order) bool { return o.ItemCount() >= minimum }
}

func OrderHasPayment() OrderSpecification {
	return func(o *domain.Order) bool { return o.Payment() != nil }
}

// OrderIsHighValue: total amount of at least 100,000, whatever the currency.
func OrderIsHighValue() OrderSpecification {
	return func(o *domain.Order) bool {
		return o.TotalAmount().Amount().GreaterThanOrEqual(highValueThreshold)
	}
}

// OrderIsBulk: five or more line items.
func OrderIsBulk() OrderSpecification {
	return OrderHasMinimumItems(bulkOrderMinimumItems)
}

// OrderIsRecent: created within the last 30 days of now. The reference time
// is a parameter so callers and tests control the clock.
func OrderIsRecent(now time.Time) OrderSpecification {
	return OrderCreatedAfter(now.Add(-recentOrderWindow))
}

// OrderCanBeCancelled: pending with no payment attached. Note this ignores
// payment status, unlike OrderRules.CanCancelOrder; the rule sets diverge
// deliberately (see lifecycle_guards_test.go).
func OrderCanBeCancelled() OrderSpecification {
	return OrderIsPending().And(OrderHasPayment().Not())
}

// OrderCanBeCompleted: pending with a payment attached, again ignoring
// payment status.
func OrderCanBeCompleted() OrderSpecification {
	return OrderIsPending().And(OrderHasPayment())
}
