package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/domain/specs"
	id "backoffice/pkg/domain"
)

// Three guard families answer "can this order be cancelled/completed?":
// the entity transitions, OrderRules, and the order specifications. They do
// not agree, and that disagreement ships deliberately — each family mirrors a
// distinct caller contract, and unifying them is a product decision. These
// tests pin the divergence down so nobody "fixes" one family and silently
// changes the answer of another.
func TestCompletionGuardsDisagree(t *testing.T) {
	rules := domain.NewOrderRules("KRW")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	member, err := domain.NewMember(id.NewMemberID(), domain.MustEmail("buyer@example.com"),
		"Buyer", domain.MustKoreanPhoneNumber("010-1234-5678"), now)
	require.NoError(t, err)

	newPaidOrder := func() *domain.Order {
		order, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", member, domain.MustMoney(1000, "KRW"), now)
		require.NoError(t, err)
		payment, err := domain.NewPayment(id.NewPaymentID(), order, domain.MustMoney(1000, "KRW"), domain.PaymentMethodCash, now)
		require.NoError(t, err)
		require.NoError(t, order.AttachPayment(payment))
		require.NoError(t, payment.Process("TXN-1"))
		return order
	}

	t.Run("an order the rules would complete cannot complete at the entity", func(t *testing.T) {
		order := newPaidOrder() // still PENDING

		assert.True(t, rules.CanCompleteOrder(order), "rules accept the pending order")
		assert.Error(t, order.Complete(), "the entity demands CONFIRMED")
	})

	t.Run("an order the entity would complete is rejected by the rules", func(t *testing.T) {
		order := newPaidOrder()
		require.NoError(t, order.Confirm())

		assert.False(t, rules.CanCompleteOrder(order), "rules demand PENDING")
		assert.NoError(t, order.Complete(), "the entity completes the confirmed order")
	})

	t.Run("the completion specification ignores payment status entirely", func(t *testing.T) {
		order, err := domain.NewOrder(id.NewOrderID(), "ORD-0002", member, domain.MustMoney(1000, "KRW"), now)
		require.NoError(t, err)
		payment, err := domain.NewPayment(id.NewPaymentID(), order, domain.MustMoney(1000, "KRW"), domain.PaymentMethodCash, now)
		require.NoError(t, err)
		require.NoError(t, order.AttachPayment(payment)) // never processed

		assert.True(t, specs.OrderCanBeCompleted().IsSatisfiedBy(order), "specification: payment attached is enough")
		assert.False(t, rules.CanCompleteOrder(order), "rules: payment must be COMPLETED")
	})
}

func TestCancellationGuardsDisagree(t *testing.T) {
	rules := domain.NewOrderRules("KRW")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	member, err := domain.NewMember(id.NewMemberID(), domain.MustEmail("buyer@example.com"),
		"Buyer", domain.MustKoreanPhoneNumber("010-1234-5678"), now)
	require.NoError(t, err)

	t.Run("an attached but unprocessed payment splits the two answers", func(t *testing.T) {
		order, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", member, domain.MustMoney(1000, "KRW"), now)
		require.NoError(t, err)
		payment, err := domain.NewPayment(id.NewPaymentID(), order, domain.MustMoney(1000, "KRW"), domain.PaymentMethodCash, now)
		require.NoError(t, err)
		require.NoError(t, order.AttachPayment(payment))

		assert.True(t, rules.CanCancelOrder(order), "rules: payment exists but is not COMPLETED")
		assert.False(t, specs.OrderCanBeCancelled().IsSatisfiedBy(order), "specification: any payment blocks cancellation")
		assert.NoError(t, order.Cancel(), "the entity cancels anything not COMPLETED")
	})

	t.Run("a confirmed order cancels at the entity but fails both evaluators", func(t *testing.T) {
		order, err := domain.NewOrder(id.NewOrderID(), "ORD-0002", member, domain.MustMoney(1000, "KRW"), now)
		require.NoError(t, err)
		require.NoError(t, order.Confirm())

		assert.False(t, rules.CanCancelOrder(order))
		assert.False(t, specs.OrderCanBeCancelled().IsSatisfiedBy(order))
		assert.NoError(t, order.Cancel())
	})
}
