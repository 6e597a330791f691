// Package specs provides the reusable business predicates for members and
// orders, built on the generic combinators in pkg/spec.
package specs

import (
	"strings"

	"backoffice/internal/domain"
	"backoffice/pkg/spec"
)

// MemberSpecification is a composable predicate over members.
type MemberSpecification = spec.Specification[*domain.Member]

// corporateEmailDomains are the domains treated as corporate accounts.
var corporateEmailDomains = []string{"company.com", "corp.com", "enterprise.com"}

func MemberIsActive() MemberSpecification {
	return func(m *domain.Member) bool { return m.Status() == domain.MemberStatusActive }
}

func MemberIsInactive() MemberSpecification {
	return func(m *domain.Member) bool { return m.Status() == domain.MemberStatusInactive }
}

func MemberHasEmailDomain(emailDomain string) MemberSpecification {
	return func(m *domain.Member) bool { return m.Email().HasDomain(emailDomain) }
}

// MemberHasNameContaining matches case-insensitively on a substring.
func MemberHasNameContaining(substring string) MemberSpecification {
	lowered := strings.ToLower(substring)
	return func(m *domain.Member) bool {
		return strings.Contains(strings.ToLower(m.Name()), lowered)
	}
}

func MemberHasKoreanPhoneNumber() MemberSpecification {
	return func(m *domain.Member) bool { return m.Phone().IsKorean() }
}

func MemberHasOrders() MemberSpecification {
	return func(m *domain.Member) bool { return m.OrderCount() > 0 }
}

func MemberHasMinimumOrders(minimum int) MemberSpecification {
	return func(m *domain.Member) bool { return m.OrderCount() >= minimum }
}

// MemberIsPremium: active with at least three orders.
func MemberIsPremium() MemberSpecification {
	return MemberIsActive().And(MemberHasMinimumOrders(3))
}

// MemberIsCorporate: active with an email in one of the corporate domains.
func MemberIsCorporate() MemberSpecification {
	corporate := MemberHasEmailDomain(corporateEmailDomains[0])
	for _, emailDomain := range corporateEmailDomains[1:] {
		corporate = corporate.Or(MemberHasEmailDomain(emailDomain))
	}
	return MemberIsActive().And(corporate)
}
