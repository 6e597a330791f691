package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
)

type PaymentSuite struct {
	suite.Suite
	order *domain.Order
	now   time.Time
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentSuite))
}

func (s *PaymentSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	member, err := domain.NewMember(
		id.NewMemberID(),
		domain.MustEmail("buyer@example.com"),
		"Buyer",
		domain.MustKoreanPhoneNumber("010-1234-5678"),
		s.now,
	)
	s.Require().NoError(err)

	order, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", member, domain.MustMoney(10_000, "KRW"), s.now)
	s.Require().NoError(err)
	s.order = order
}

func (s *PaymentSuite) newPayment() *domain.Payment {
	payment, err := domain.NewPayment(id.NewPaymentID(), s.order, domain.MustMoney(10_000, "KRW"), domain.PaymentMethodCreditCard, s.now)
	s.Require().NoError(err)
	return payment
}

func (s *PaymentSuite) TestConstructionInvariants() {
	s.Run("rejects nil order", func() {
		_, err := domain.NewPayment(id.NewPaymentID(), nil, domain.MustMoney(100, "KRW"), domain.PaymentMethodCash, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects uninitialized amount", func() {
		_, err := domain.NewPayment(id.NewPaymentID(), s.order, domain.Money{}, domain.PaymentMethodCash, s.now)
		s.Require().Error(err)
	})

	s.Run("rejects unknown method", func() {
		_, err := domain.NewPayment(id.NewPaymentID(), s.order, domain.MustMoney(100, "KRW"), domain.PaymentMethod("CRYPTO"), s.now)
		s.Require().Error(err)
	})

	s.Run("starts pending", func() {
		payment := s.newPayment()
		s.Equal(domain.PaymentStatusPending, payment.Status())
		s.Empty(payment.TransactionID())
	})
}

func (s *PaymentSuite) TestProcess() {
	s.Run("completes and stores the transaction id", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Process("TXN-1"))
		s.Equal(domain.PaymentStatusCompleted, payment.Status())
		s.Equal("TXN-1", payment.TransactionID())
	})

	s.Run("rejects blank transaction id", func() {
		payment := s.newPayment()
		err := payment.Process("   ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Equal(domain.PaymentStatusPending, payment.Status())
	})

	s.Run("re-processing a failed payment still completes at the entity level", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Fail("card declined"))
		s.Require().NoError(payment.Process("TXN-2"))
		s.Equal(domain.PaymentStatusCompleted, payment.Status())
		s.Equal("TXN-2", payment.TransactionID())
	})

	s.Run("re-processing a completed payment overwrites the transaction id", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Process("TXN-1"))
		s.Require().NoError(payment.Process("TXN-2"))
		s.Equal("TXN-2", payment.TransactionID())
	})
}

func (s *PaymentSuite) TestFail() {
	s.Run("records the reason", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Fail("insufficient funds"))
		s.Equal(domain.PaymentStatusFailed, payment.Status())
		s.Equal("insufficient funds", payment.FailureReason())
	})

	s.Run("rejects blank reason", func() {
		payment := s.newPayment()
		s.Require().Error(payment.Fail(""))
	})

	s.Run("failing a completed payment is not guarded", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Process("TXN-1"))
		s.Require().NoError(payment.Fail("chargeback"))
		s.Equal(domain.PaymentStatusFailed, payment.Status())
	})
}

func (s *PaymentSuite) TestRefund() {
	s.Run("refunds a completed payment", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Process("TXN-1"))
		s.Require().NoError(payment.Refund())
		s.Equal(domain.PaymentStatusRefunded, payment.Status())
	})

	s.Run("refund of a pending payment fails", func() {
		payment := s.newPayment()
		err := payment.Refund()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("second refund is a no-op", func() {
		payment := s.newPayment()
		s.Require().NoError(payment.Process("TXN-1"))
		s.Require().NoError(payment.Refund())
		s.Require().NoError(payment.Refund())
		s.Equal(domain.PaymentStatusRefunded, payment.Status())
	})
}
