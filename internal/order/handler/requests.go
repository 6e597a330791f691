package handler

import (
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/order"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
)

// MoneyPayload is the wire form of a monetary amount. The amount travels as a
// decimal string to avoid float rounding on either side.
type MoneyPayload struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (p MoneyPayload) parse() (domain.Money, error) {
	return domain.MoneyFromString(strings.TrimSpace(p.Amount), strings.TrimSpace(p.Currency))
}

// ItemPayload is one order line in a place or add-item request.
type ItemPayload struct {
	ProductName        string       `json:"product_name"`
	ProductDescription string       `json:"product_description"`
	Quantity           int          `json:"quantity"`
	UnitPrice          MoneyPayload `json:"unit_price"`
}

func (p ItemPayload) parse() (order.ItemInput, error) {
	unitPrice, err := p.UnitPrice.parse()
	if err != nil {
		return order.ItemInput{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid unit price")
	}
	return order.ItemInput{
		ProductName:        strings.TrimSpace(p.ProductName),
		ProductDescription: strings.TrimSpace(p.ProductDescription),
		Quantity:           p.Quantity,
		UnitPrice:          unitPrice,
	}, nil
}

// PlaceRequest is the HTTP request body for POST /orders.
type PlaceRequest struct {
	MemberID    string        `json:"member_id"`
	OrderNumber string        `json:"order_number"`
	TotalAmount MoneyPayload  `json:"total_amount"`
	Items       []ItemPayload `json:"items"`

	// Parsed values (populated by Validate)
	parsedMemberID id.MemberID
	parsedTotal    domain.Money
	parsedItems    []order.ItemInput
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *PlaceRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	memberID, err := id.ParseMemberID(strings.TrimSpace(r.MemberID))
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid member id")
	}
	r.parsedMemberID = memberID

	r.OrderNumber = strings.TrimSpace(r.OrderNumber)
	if r.OrderNumber == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "order number is required")
	}

	total, err := r.TotalAmount.parse()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid total amount")
	}
	r.parsedTotal = total

	r.parsedItems = make([]order.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		input, err := item.parse()
		if err != nil {
			return err
		}
		r.parsedItems = append(r.parsedItems, input)
	}

	return nil
}

// ParsedMemberID returns the validated member id.
func (r *PlaceRequest) ParsedMemberID() id.MemberID {
	return r.parsedMemberID
}

// ParsedTotal returns the validated total amount.
func (r *PlaceRequest) ParsedTotal() domain.Money {
	return r.parsedTotal
}

// ParsedItems returns the validated order lines.
func (r *PlaceRequest) ParsedItems() []order.ItemInput {
	return r.parsedItems
}

// AddItemRequest is the HTTP request body for POST /orders/{orderID}/items.
type AddItemRequest struct {
	ItemPayload

	parsedItem order.ItemInput
}

// Validate validates and parses the request.
func (r *AddItemRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	input, err := r.parse()
	if err != nil {
		return err
	}
	r.parsedItem = input
	return nil
}

// ParsedItem returns the validated order line.
func (r *AddItemRequest) ParsedItem() order.ItemInput {
	return r.parsedItem
}
