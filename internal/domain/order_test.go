package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
)

type OrderSuite struct {
	suite.Suite
	member *domain.Member
	now    time.Time
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderSuite))
}

func (s *OrderSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	member, err := domain.NewMember(
		id.NewMemberID(),
		domain.MustEmail("buyer@example.com"),
		"Buyer",
		domain.MustKoreanPhoneNumber("010-1234-5678"),
		s.now,
	)
	s.Require().NoError(err)
	s.member = member
}

func (s *OrderSuite) newOrder(amount int64) *domain.Order {
	order, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", s.member, domain.MustMoney(amount, "KRW"), s.now)
	s.Require().NoError(err)
	return order
}

func (s *OrderSuite) newPayment(order *domain.Order, amount int64) *domain.Payment {
	payment, err := domain.NewPayment(id.NewPaymentID(), order, domain.MustMoney(amount, "KRW"), domain.PaymentMethodCash, s.now)
	s.Require().NoError(err)
	return payment
}

func (s *OrderSuite) TestConstructionInvariants() {
	s.Run("rejects blank order number", func() {
		_, err := domain.NewOrder(id.NewOrderID(), "  ", s.member, domain.MustMoney(100, "KRW"), s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects nil member", func() {
		_, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", nil, domain.MustMoney(100, "KRW"), s.now)
		s.Require().Error(err)
	})

	s.Run("rejects uninitialized total amount", func() {
		_, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", s.member, domain.Money{}, s.now)
		s.Require().Error(err)
	})

	s.Run("starts pending", func() {
		order := s.newOrder(1000)
		s.Equal(domain.OrderStatusPending, order.Status())
		s.Equal(s.member, order.Member())
		s.Nil(order.Payment())
		s.Zero(order.ItemCount())
	})
}

func (s *OrderSuite) TestLifecycle() {
	s.Run("pending confirm complete succeeds", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Confirm())
		s.Equal(domain.OrderStatusConfirmed, order.Status())
		s.Require().NoError(order.Complete())
		s.Equal(domain.OrderStatusCompleted, order.Status())
	})

	s.Run("complete from pending fails", func() {
		order := s.newOrder(1000)
		err := order.Complete()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Contains(err.Error(), "only confirmed orders can be completed")
	})

	s.Run("complete from cancelled names the cancellation", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Cancel())
		err := order.Complete()
		s.Require().Error(err)
		s.Contains(err.Error(), "cancelled orders cannot be completed")
	})

	s.Run("cancel from pending succeeds", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Cancel())
		s.Equal(domain.OrderStatusCancelled, order.Status())
	})

	s.Run("cancel from confirmed succeeds", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Confirm())
		s.Require().NoError(order.Cancel())
		s.Equal(domain.OrderStatusCancelled, order.Status())
	})

	s.Run("cancel from completed fails", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Confirm())
		s.Require().NoError(order.Complete())
		err := order.Cancel()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("confirm twice fails", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Confirm())
		s.Require().Error(order.Confirm())
	})
}

func (s *OrderSuite) TestItems() {
	s.Run("add item sets the back-reference", func() {
		order := s.newOrder(1000)
		item, err := domain.NewOrderItem("Keyboard", "Mechanical, brown switches", 2, domain.MustMoney(500, "KRW"))
		s.Require().NoError(err)

		s.Require().NoError(order.AddItem(item))
		s.Equal(1, order.ItemCount())
		s.Equal(order, item.Order())
	})

	s.Run("nil item is rejected", func() {
		order := s.newOrder(1000)
		err := order.AddItem(nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("items can be added in any status", func() {
		order := s.newOrder(1000)
		s.Require().NoError(order.Cancel())

		item, err := domain.NewOrderItem("Mouse", "Wireless", 1, domain.MustMoney(1000, "KRW"))
		s.Require().NoError(err)
		s.Require().NoError(order.AddItem(item))
	})

	s.Run("Items returns a copy", func() {
		order := s.newOrder(1000)
		item, err := domain.NewOrderItem("Mouse", "Wireless", 1, domain.MustMoney(1000, "KRW"))
		s.Require().NoError(err)
		s.Require().NoError(order.AddItem(item))

		items := order.Items()
		items[0] = nil
		s.NotNil(order.Items()[0])
	})
}

func (s *OrderSuite) TestAttachPayment() {
	s.Run("rejects nil payment", func() {
		order := s.newOrder(1000)
		s.Require().Error(order.AttachPayment(nil))
	})

	s.Run("last attached payment wins", func() {
		order := s.newOrder(1000)
		first := s.newPayment(order, 1000)
		second := s.newPayment(order, 1000)

		s.Require().NoError(order.AttachPayment(first))
		s.Require().NoError(order.AttachPayment(second))
		s.Equal(second, order.Payment())
	})
}

type OrderItemSuite struct {
	suite.Suite
}

func TestOrderItemSuite(t *testing.T) {
	suite.Run(t, new(OrderItemSuite))
}

func (s *OrderItemSuite) TestConstructionInvariants() {
	unit := domain.MustMoney(2500, "KRW")

	s.Run("rejects blank product name", func() {
		_, err := domain.NewOrderItem(" ", "desc", 1, unit)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects blank description", func() {
		_, err := domain.NewOrderItem("Widget", "", 1, unit)
		s.Require().Error(err)
	})

	s.Run("rejects negative quantity", func() {
		_, err := domain.NewOrderItem("Widget", "desc", -1, unit)
		s.Require().Error(err)
	})

	s.Run("rejects uninitialized unit price", func() {
		_, err := domain.NewOrderItem("Widget", "desc", 1, domain.Money{})
		s.Require().Error(err)
	})

	s.Run("zero quantity is allowed and totals to zero", func() {
		item, err := domain.NewOrderItem("Widget", "desc", 0, unit)
		s.Require().NoError(err)
		s.True(item.TotalPrice().IsZero())
	})
}

func (s *OrderItemSuite) TestUpdateQuantity() {
	unit := domain.MustMoney(2500, "KRW")
	item, err := domain.NewOrderItem("Widget", "desc", 2, unit)
	s.Require().NoError(err)

	s.Run("total always equals unit price times quantity", func() {
		for _, quantity := range []int{0, 1, 3, 10, 250} {
			s.Require().NoError(item.UpdateQuantity(quantity))
			expected := unit.Multiply(decimal.NewFromInt(int64(quantity)))
			equal, err := item.TotalPrice().Equals(expected)
			s.Require().NoError(err)
			s.True(equal, "quantity %d", quantity)
		}
	})

	s.Run("rejects negative quantity and keeps the previous total", func() {
		s.Require().NoError(item.UpdateQuantity(4))
		before := item.TotalPrice()

		s.Require().Error(item.UpdateQuantity(-1))
		s.Equal(4, item.Quantity())
		equal, err := item.TotalPrice().Equals(before)
		s.Require().NoError(err)
		s.True(equal)
	})
}

func (s *OrderItemSuite) TestAttachTo() {
	item, err := domain.NewOrderItem("Widget", "desc", 1, domain.MustMoney(100, "KRW"))
	s.Require().NoError(err)

	s.Run("rejects nil order", func() {
		err := item.AttachTo(nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
