package handler

import (
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/payment"
)

// MoneyResponse is the HTTP representation of a monetary amount.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// FromMoney maps a domain money value to its HTTP representation.
func FromMoney(m domain.Money) MoneyResponse {
	return MoneyResponse{
		Amount:   m.Amount().String(),
		Currency: m.Currency(),
	}
}

// PaymentResponse is the HTTP representation of a payment.
type PaymentResponse struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"order_id"`
	Amount        MoneyResponse `json:"amount"`
	Method        string        `json:"method"`
	Status        string        `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// FromPayment maps a domain payment to its HTTP representation.
func FromPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID().String(),
		OrderID:       p.Order().ID().String(),
		Amount:        FromMoney(p.Amount()),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		FailureReason: p.FailureReason(),
		CreatedAt:     p.CreatedAt(),
	}
}

// QuoteResponse reports method support and the processing fee for an amount.
type QuoteResponse struct {
	Supported bool          `json:"supported"`
	Fee       MoneyResponse `json:"fee"`
}

// FromQuote maps a fee quote to its HTTP representation.
func FromQuote(q *payment.Quote) QuoteResponse {
	return QuoteResponse{
		Supported: q.Supported,
		Fee:       FromMoney(q.Fee),
	}
}
