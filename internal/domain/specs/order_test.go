package specs_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"backoffice/internal/domain"
	"backoffice/internal/domain/specs"
	id "backoffice/pkg/domain"
)

type OrderSpecsSuite struct {
	suite.Suite
	member *domain.Member
	now    time.Time
}

func TestOrderSpecsSuite(t *testing.T) {
	suite.Run(t, new(OrderSpecsSuite))
}

func (s *OrderSpecsSuite) SetupTest() {
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

func (s *OrderSpecsSuite) newOrder(total domain.Money, createdAt time.Time) *domain.Order {
	order, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", s.member, total, createdAt)
	s.Require().NoError(err)
	return order
}

func (s *OrderSpecsSuite) addItems(order *domain.Order, count int) {
	for i := 0; i < count; i++ {
		item, err := domain.NewOrderItem(fmt.Sprintf("Widget %d", i+1), "A widget", 1, domain.MustMoney(1000, "KRW"))
		s.Require().NoError(err)
		s.Require().NoError(order.AddItem(item))
	}
}

func (s *OrderSpecsSuite) attachPayment(order *domain.Order) *domain.Payment {
	payment, err := domain.NewPayment(id.NewPaymentID(), order, order.TotalAmount(), domain.PaymentMethodCash, s.now)
	s.Require().NoError(err)
	s.Require().NoError(order.AttachPayment(payment))
	return payment
}

func (s *OrderSpecsSuite) TestStatusSpecifications() {
	pending := s.newOrder(domain.MustMoney(1000, "KRW"), s.now)
	s.True(specs.OrderIsPending().IsSatisfiedBy(pending))
	s.False(specs.OrderIsCompleted().IsSatisfiedBy(pending))
	s.False(specs.OrderIsCancelled().IsSatisfiedBy(pending))

	completed := s.newOrder(domain.MustMoney(1000, "KRW"), s.now)
	s.Require().NoError(completed.Confirm())
	s.Require().NoError(completed.Complete())
	s.True(specs.OrderIsCompleted().IsSatisfiedBy(completed))

	cancelled := s.newOrder(domain.MustMoney(1000, "KRW"), s.now)
	s.Require().NoError(cancelled.Cancel())
	s.True(specs.OrderIsCancelled().IsSatisfiedBy(cancelled))
}

func (s *OrderSpecsSuite) TestAmountSpecifications() {
	order := s.newOrder(domain.MustMoney(50_000, "KRW"), s.now)
	krw := func(amount int64) domain.Money { return domain.MustMoney(amount, "KRW") }

	s.Run("minimum amount is inclusive", func() {
		s.True(specs.OrderHasMinimumAmount(krw(50_000)).IsSatisfiedBy(order))
		s.False(specs.OrderHasMinimumAmount(krw(50_001)).IsSatisfiedBy(order))
	})

	s.Run("maximum amount is inclusive", func() {
		s.True(specs.OrderHasMaximumAmount(krw(50_000)).IsSatisfiedBy(order))
		s.False(specs.OrderHasMaximumAmount(krw(49_999)).IsSatisfiedBy(order))
	})

	s.Run("between composes both bounds", func() {
		s.True(specs.OrderHasAmountBetween(krw(10_000), krw(90_000)).IsSatisfiedBy(order))
		s.False(specs.OrderHasAmountBetween(krw(60_000), krw(90_000)).IsSatisfiedBy(order))
		s.False(specs.OrderHasAmountBetween(krw(10_000), krw(40_000)).IsSatisfiedBy(order))
	})

	s.Run("currency mismatch never satisfies", func() {
		s.False(specs.OrderHasMinimumAmount(domain.MustMoney(1, "USD")).IsSatisfiedBy(order))
		s.False(specs.OrderHasMaximumAmount(domain.MustMoney(1_000_000, "USD")).IsSatisfiedBy(order))
	})
}

func (s *OrderSpecsSuite) TestTimeSpecifications() {
	order := s.newOrder(domain.MustMoney(1000, "KRW"), s.now)

	s.True(specs.OrderCreatedAfter(s.now.Add(-time.Hour)).IsSatisfiedBy(order))
	s.False(specs.OrderCreatedAfter(s.now).IsSatisfiedBy(order), "bounds are strict")

	s.True(specs.OrderCreatedBefore(s.now.Add(time.Hour)).IsSatisfiedBy(order))
	s.False(specs.OrderCreatedBefore(s.now).IsSatisfiedBy(order))

	s.True(specs.OrderCreatedBetween(s.now.Add(-time.Hour), s.now.Add(time.Hour)).IsSatisfiedBy(order))
}

func (s *OrderSpecsSuite) TestItemAndPaymentSpecifications() {
	order := s.newOrder(domain.MustMoney(1000, "KRW"), s.now)

	s.False(specs.OrderHasItems().IsSatisfiedBy(order))
	s.False(specs.OrderHasPayment().IsSatisfiedBy(order))

	s.addItems(order, 3)
	s.attachPayment(order)

	s.True(specs.OrderHasItems().IsSatisfiedBy(order))
	s.True(specs.OrderHasMinimumItems(3).IsSatisfiedBy(order))
	s.False(specs.OrderHasMinimumItems(4).IsSatisfiedBy(order))
	s.True(specs.OrderHasPayment().IsSatisfiedBy(order))
}

func (s *OrderSpecsSuite) TestOrderIsHighValue() {
	s.Run("order totalling 150000 is high value", func() {
		order := s.newOrder(domain.MustMoney(150_000, "KRW"), s.now)
		s.True(specs.OrderIsHighValue().IsSatisfiedBy(order))
	})

	s.Run("threshold is inclusive", func() {
		s.True(specs.OrderIsHighValue().IsSatisfiedBy(s.newOrder(domain.MustMoney(100_000, "KRW"), s.now)))
		s.False(specs.OrderIsHighValue().IsSatisfiedBy(s.newOrder(domain.MustMoney(99_999, "KRW"), s.now)))
	})

	s.Run("compares the numeric amount across currencies", func() {
		order := s.newOrder(domain.MustMoney(100_000, "USD"), s.now)
		s.True(specs.OrderIsHighValue().IsSatisfiedBy(order))
	})
}

func (s *OrderSpecsSuite) TestOrderIsBulk() {
	order := s.newOrder(domain.MustMoney(5000, "KRW"), s.now)
	s.addItems(order, 4)
	s.False(specs.OrderIsBulk().IsSatisfiedBy(order))

	s.addItems(order, 1)
	s.True(specs.OrderIsBulk().IsSatisfiedBy(order))
}

func (s *OrderSpecsSuite) TestOrderIsRecent() {
	s.Run("within the window", func() {
		order := s.newOrder(domain.MustMoney(1000, "KRW"), s.now.Add(-29*24*time.Hour))
		s.True(specs.OrderIsRecent(s.now).IsSatisfiedBy(order))
	})

	s.Run("outside the window", func() {
		order := s.newOrder(domain.MustMoney(1000, "KRW"), s.now.Add(-31*24*time.Hour))
		s.False(specs.OrderIsRecent(s.now).IsSatisfiedBy(order))
	})
}

func (s *OrderSpecsSuite) TestComposition() {
	order := s.newOrder(domain.MustMoney(150_000, "KRW"), s.now)
	s.addItems(order, 5)

	recentHighValueBulk := specs.OrderIsRecent(s.now).
		And(specs.OrderIsHighValue()).
		And(specs.OrderIsBulk())
	s.True(recentHighValueBulk.IsSatisfiedBy(order))

	s.True(specs.OrderIsCancelled().Not().IsSatisfiedBy(order))
	s.True(specs.OrderIsCancelled().Or(specs.OrderIsPending()).IsSatisfiedBy(order))
}
