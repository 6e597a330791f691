// Package domain holds the identifier types shared across modules. Each
// aggregate gets its own UUID-backed type so the compiler rejects passing a
// MemberID where an OrderID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "backoffice/pkg/domain-errors"
)

type (
	MemberID  uuid.UUID
	OrderID   uuid.UUID
	PaymentID uuid.UUID
)

func NewMemberID() MemberID   { return MemberID(uuid.New()) }
func NewOrderID() OrderID     { return OrderID(uuid.New()) }
func NewPaymentID() PaymentID { return PaymentID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs. Enforced at trust boundaries (HTTP paths, store rows).
func parseUUID(raw, label string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", label)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", label)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", label)
	}
	return parsed, nil
}

func ParseMemberID(raw string) (MemberID, error) {
	parsed, err := parseUUID(raw, "member id")
	return MemberID(parsed), err
}

func ParseOrderID(raw string) (OrderID, error) {
	parsed, err := parseUUID(raw, "order id")
	return OrderID(parsed), err
}

func ParsePaymentID(raw string) (PaymentID, error) {
	parsed, err := parseUUID(raw, "payment id")
	return PaymentID(parsed), err
}

func (id MemberID) String() string  { return uuid.UUID(id).String() }
func (id OrderID) String() string   { return uuid.UUID(id).String() }
func (id PaymentID) String() string { return uuid.UUID(id).String() }

func (id MemberID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id OrderID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
