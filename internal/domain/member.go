package domain

import (
	"strings"
	"time"

	dErrors "backoffice/pkg/domain-errors"
	id "backoffice/pkg/domain"
)

// MemberStatus is the member lifecycle state: ACTIVE ⇄ INACTIVE.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// ParseMemberStatus validates a status read from storage or transport.
func ParseMemberStatus(raw string) (MemberStatus, error) {
	switch MemberStatus(raw) {
	case MemberStatusActive, MemberStatusInactive:
		return MemberStatus(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown member status: %q", raw)
	}
}

// Member holds an order collection and a two-state lifecycle. Activation and
// deactivation are unconditional and idempotent; the surrounding service
// publishes the matching domain event.
type Member struct {
	id        id.MemberID
	email     Email
	name      string
	phone     PhoneNumber
	status    MemberStatus
	orders    []*Order
	createdAt time.Time
}

func NewMember(memberID id.MemberID, email Email, name string, phone PhoneNumber, now time.Time) (*Member, error) {
	if email.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "name cannot be blank")
	}
	if phone.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "phone number is required")
	}
	return &Member{
		id:        memberID,
		email:     email,
		name:      name,
		phone:     phone,
		status:    MemberStatusActive,
		createdAt: now,
	}, nil
}

// RehydrateMember rebuilds a member from storage in the given state.
func RehydrateMember(memberID id.MemberID, email Email, name string, phone PhoneNumber, status MemberStatus, createdAt time.Time) *Member {
	return &Member{
		id:        memberID,
		email:     email,
		name:      name,
		phone:     phone,
		status:    status,
		createdAt: createdAt,
	}
}

// Activate sets the member ACTIVE. Re-activating an active member is a no-op.
func (m *Member) Activate() {
	m.status = MemberStatusActive
}

// Deactivate sets the member INACTIVE. Idempotent like Activate.
func (m *Member) Deactivate() {
	m.status = MemberStatusInactive
}

// AddOrder appends to the member's order collection. Permitted regardless of
// member status.
func (m *Member) AddOrder(order *Order) error {
	if order == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "order cannot be nil")
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *Member) ID() id.MemberID       { return m.id }
func (m *Member) Email() Email          { return m.email }
func (m *Member) Name() string          { return m.name }
func (m *Member) Phone() PhoneNumber    { return m.phone }
func (m *Member) Status() MemberStatus  { return m.status }
func (m *Member) CreatedAt() time.Time  { return m.createdAt }
func (m *Member) IsActive() bool        { return m.status == MemberStatusActive }

// Orders returns a copy of the order collection.
func (m *Member) Orders() []*Order {
	return append([]*Order(nil), m.orders...)
}

func (m *Member) OrderCount() int { return len(m.orders) }
