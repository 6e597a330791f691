package handler

import (
	"strings"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
)

// CreateRequest is the HTTP request body for POST /payments.
type CreateRequest struct {
	OrderID  string `json:"order_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Method   string `json:"method"`

	// Parsed values (populated by Validate)
	parsedOrderID id.OrderID
	parsedAmount  domain.Money
	parsedMethod  domain.PaymentMethod
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	orderID, err := id.ParseOrderID(strings.TrimSpace(r.OrderID))
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid order id")
	}
	r.parsedOrderID = orderID

	amount, err := domain.MoneyFromString(strings.TrimSpace(r.Amount), strings.TrimSpace(r.Currency))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid amount")
	}
	r.parsedAmount = amount

	method, err := domain.ParsePaymentMethod(strings.ToUpper(strings.TrimSpace(r.Method)))
	if err != nil {
		return err
	}
	r.parsedMethod = method

	return nil
}

// ParsedOrderID returns the validated order id.
func (r *CreateRequest) ParsedOrderID() id.OrderID {
	return r.parsedOrderID
}

// ParsedAmount returns the validated amount.
func (r *CreateRequest) ParsedAmount() domain.Money {
	return r.parsedAmount
}

// ParsedMethod returns the validated payment method.
func (r *CreateRequest) ParsedMethod() domain.PaymentMethod {
	return r.parsedMethod
}

// ProcessRequest is the HTTP request body for POST /payments/{paymentID}/process.
type ProcessRequest struct {
	TransactionID string `json:"transaction_id"`
}

// Validate validates the request.
func (r *ProcessRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.TransactionID = strings.TrimSpace(r.TransactionID)
	if r.TransactionID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "transaction id is required")
	}
	return nil
}

// FailRequest is the HTTP request body for POST /payments/{paymentID}/fail.
type FailRequest struct {
	Reason string `json:"reason"`
}

// Validate validates the request.
func (r *FailRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "failure reason is required")
	}
	return nil
}
