package domain

import (
	"github.com/shopspring/decimal"

	dErrors "backoffice/pkg/domain-errors"
)

var (
	creditCardMinimum   = decimal.NewFromInt(1000)
	bankTransferMaximum = decimal.NewFromInt(10_000_000)
	creditCardFeeRate   = decimal.RequireFromString("0.025")
	bankTransferFlatFee = decimal.NewFromInt(500)
)

// PaymentRules evaluates eligibility and fee rules over payments. Stateless;
// reads entity state and never mutates it.
type PaymentRules struct{}

func NewPaymentRules() PaymentRules { return PaymentRules{} }

// ValidatePaymentAmount reports whether the payment amount matches its
// order's declared total.
func (PaymentRules) ValidatePaymentAmount(payment *Payment) bool {
	if payment == nil || payment.Order() == nil {
		return false
	}
	equal, err := payment.Amount().Equals(payment.Order().TotalAmount())
	return err == nil && equal
}

// CanProcessPayment permits processing of pending payments on pending orders
// whose amounts agree.
func (r PaymentRules) CanProcessPayment(payment *Payment) bool {
	if payment == nil || payment.Status() != PaymentStatusPending {
		return false
	}
	if !r.ValidatePaymentAmount(payment) {
		return false
	}
	return payment.Order().Status() == OrderStatusPending
}

// CanRefundPayment permits refunds of completed payments on completed orders.
func (PaymentRules) CanRefundPayment(payment *Payment) bool {
	if payment == nil || payment.Status() != PaymentStatusCompleted {
		return false
	}
	return payment.Order() != nil && payment.Order().Status() == OrderStatusCompleted
}

// IsPaymentMethodSupported applies per-method amount limits. The thresholds
// compare numeric amounts in the settlement currency, independent of minor
// units.
func (PaymentRules) IsPaymentMethodSupported(method PaymentMethod, amount Money) bool {
	switch method {
	case PaymentMethodCreditCard:
		return amount.Amount().GreaterThanOrEqual(creditCardMinimum)
	case PaymentMethodBankTransfer:
		return amount.Amount().LessThan(bankTransferMaximum)
	case PaymentMethodCash:
		return true
	default:
		return false
	}
}

// ProcessingFee returns the fee charged for settling the given amount:
// 2.5% for credit cards, a flat 500 for bank transfers, nothing for cash.
func (PaymentRules) ProcessingFee(method PaymentMethod, amount Money) (Money, error) {
	switch method {
	case PaymentMethodCreditCard:
		return amount.Multiply(creditCardFeeRate), nil
	case PaymentMethodBankTransfer:
		return NewMoney(bankTransferFlatFee, amount.Currency())
	case PaymentMethodCash:
		return ZeroMoney(amount.Currency()), nil
	default:
		return Money{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown payment method: %q", method)
	}
}
