package domain

import (
	"strings"
	"time"

	dErrors "backoffice/pkg/domain-errors"
	id "backoffice/pkg/domain"
)

// PaymentStatus is the payment lifecycle state. REFUNDED is terminal.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus validates a status read from storage or transport.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(raw) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return PaymentStatus(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown payment status: %q", raw)
	}
}

// PaymentMethod identifies how a payment settles.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
)

// ParsePaymentMethod validates a method read from storage or transport.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(raw) {
	case PaymentMethodCreditCard, PaymentMethodBankTransfer, PaymentMethodCash:
		return PaymentMethod(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown payment method: %q", raw)
	}
}

// Payment settles exactly one order.
//
// Process and Fail apply no state guard: they overwrite the status from any
// current state. Callers that want stricter gating (for example rejecting
// re-processing of a failed payment) layer it on top; the entity contract
// stays permissive.
type Payment struct {
	id            id.PaymentID
	order         *Order
	amount        Money
	method        PaymentMethod
	status        PaymentStatus
	transactionID string
	failureReason string
	createdAt     time.Time
}

func NewPayment(paymentID id.PaymentID, order *Order, amount Money, method PaymentMethod, now time.Time) (*Payment, error) {
	if order == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order cannot be nil")
	}
	if amount.Currency() == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "amount is required")
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	return &Payment{
		id:        paymentID,
		order:     order,
		amount:    amount,
		method:    method,
		status:    PaymentStatusPending,
		createdAt: now,
	}, nil
}

// RehydratePayment rebuilds a payment from storage in the given state.
func RehydratePayment(paymentID id.PaymentID, order *Order, amount Money, method PaymentMethod, status PaymentStatus, transactionID, failureReason string, createdAt time.Time) *Payment {
	return &Payment{
		id:            paymentID,
		order:         order,
		amount:        amount,
		method:        method,
		status:        status,
		transactionID: transactionID,
		failureReason: failureReason,
		createdAt:     createdAt,
	}
}

// Process marks the payment COMPLETED and records the transaction id,
// regardless of the current state.
func (p *Payment) Process(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "transaction id cannot be blank")
	}
	p.status = PaymentStatusCompleted
	p.transactionID = transactionID
	return nil
}

// Fail marks the payment FAILED and records the reason, regardless of the
// current state.
func (p *Payment) Fail(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "failure reason cannot be blank")
	}
	p.status = PaymentStatusFailed
	p.failureReason = reason
	return nil
}

// Refund moves a completed payment to REFUNDED. Refunding an already
// refunded payment is a no-op.
func (p *Payment) Refund() error {
	if p.status == PaymentStatusRefunded {
		return nil
	}
	if p.status != PaymentStatusCompleted {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"only completed payments can be refunded, current status: %s", p.status)
	}
	p.status = PaymentStatusRefunded
	return nil
}

func (p *Payment) ID() id.PaymentID      { return p.id }
func (p *Payment) Order() *Order         { return p.order }
func (p *Payment) Amount() Money         { return p.amount }
func (p *Payment) Method() PaymentMethod { return p.method }
func (p *Payment) Status() PaymentStatus { return p.status }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) FailureReason() string { return p.failureReason }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
