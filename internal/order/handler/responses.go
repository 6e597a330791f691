package handler

import (
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/order"
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

// ItemResponse is the HTTP representation of an order line.
type ItemResponse struct {
	ProductName        string        `json:"product_name"`
	ProductDescription string        `json:"product_description,omitempty"`
	Quantity           int           `json:"quantity"`
	UnitPrice          MoneyResponse `json:"unit_price"`
	TotalPrice         MoneyResponse `json:"total_price"`
}

// OrderResponse is the HTTP representation of an order.
type OrderResponse struct {
	ID          string         `json:"id"`
	OrderNumber string         `json:"order_number"`
	MemberID    string         `json:"member_id"`
	TotalAmount MoneyResponse  `json:"total_amount"`
	Status      string         `json:"status"`
	Items       []ItemResponse `json:"items"`
	PaymentID   string         `json:"payment_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromOrder maps a domain order to its HTTP representation.
func FromOrder(o *domain.Order) OrderResponse {
	items := make([]ItemResponse, 0, o.ItemCount())
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			ProductName:        item.ProductName(),
			ProductDescription: item.ProductDescription(),
			Quantity:           item.Quantity(),
			UnitPrice:          FromMoney(item.UnitPrice()),
			TotalPrice:         FromMoney(item.TotalPrice()),
		})
	}

	resp := OrderResponse{
		ID:          o.ID().String(),
		OrderNumber: o.OrderNumber(),
		MemberID:    o.Member().ID().String(),
		TotalAmount: FromMoney(o.TotalAmount()),
		Status:      string(o.Status()),
		Items:       items,
		CreatedAt:   o.CreatedAt(),
	}
	if p := o.Payment(); p != nil {
		resp.PaymentID = p.ID().String()
	}
	return resp
}

// TotalValidationResponse reports the declared versus calculated order total.
type TotalValidationResponse struct {
	Valid           bool          `json:"valid"`
	DeclaredTotal   MoneyResponse `json:"declared_total"`
	CalculatedTotal MoneyResponse `json:"calculated_total"`
}

// FromTotalValidation maps a total validation result to its HTTP representation.
func FromTotalValidation(v *order.TotalValidation) TotalValidationResponse {
	return TotalValidationResponse{
		Valid:           v.Valid,
		DeclaredTotal:   FromMoney(v.DeclaredTotal),
		CalculatedTotal: FromMoney(v.CalculatedTotal),
	}
}
