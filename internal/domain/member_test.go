package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
)

type MemberSuite struct {
	suite.Suite
	now time.Time
}

func TestMemberSuite(t *testing.T) {
	suite.Run(t, new(MemberSuite))
}

func (s *MemberSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *MemberSuite) newMember() *domain.Member {
	member, err := domain.NewMember(
		id.NewMemberID(),
		domain.MustEmail("jane@example.com"),
		"Jane",
		domain.MustKoreanPhoneNumber("010-1234-5678"),
		s.now,
	)
	s.Require().NoError(err)
	return member
}

func (s *MemberSuite) TestConstructionInvariants() {
	s.Run("rejects zero email", func() {
		_, err := domain.NewMember(id.NewMemberID(), domain.Email{}, "Jane", domain.MustKoreanPhoneNumber("010-1234-5678"), s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects blank name", func() {
		_, err := domain.NewMember(id.NewMemberID(), domain.MustEmail("jane@example.com"), "  ", domain.MustKoreanPhoneNumber("010-1234-5678"), s.now)
		s.Require().Error(err)
	})

	s.Run("rejects zero phone number", func() {
		_, err := domain.NewMember(id.NewMemberID(), domain.MustEmail("jane@example.com"), "Jane", domain.PhoneNumber{}, s.now)
		s.Require().Error(err)
	})

	s.Run("starts active", func() {
		member := s.newMember()
		s.Equal(domain.MemberStatusActive, member.Status())
		s.True(member.IsActive())
	})
}

func (s *MemberSuite) TestLifecycle() {
	member := s.newMember()

	s.Run("deactivate then activate round-trips", func() {
		member.Deactivate()
		s.Equal(domain.MemberStatusInactive, member.Status())
		member.Activate()
		s.Equal(domain.MemberStatusActive, member.Status())
	})

	s.Run("transitions are idempotent", func() {
		member.Activate()
		member.Activate()
		s.True(member.IsActive())
		member.Deactivate()
		member.Deactivate()
		s.False(member.IsActive())
	})
}

func (s *MemberSuite) TestAddOrder() {
	member := s.newMember()

	s.Run("rejects nil order", func() {
		err := member.AddOrder(nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("appends regardless of member status", func() {
		member.Deactivate()
		order, err := domain.NewOrder(id.NewOrderID(), "ORD-0001", member, domain.MustMoney(1000, "KRW"), s.now)
		s.Require().NoError(err)

		s.Require().NoError(member.AddOrder(order))
		s.Equal(1, member.OrderCount())
	})

	s.Run("Orders returns a copy", func() {
		orders := member.Orders()
		if len(orders) > 0 {
			orders[0] = nil
			s.NotNil(member.Orders()[0])
		}
	})
}
