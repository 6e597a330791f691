package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	dErrors "backoffice/pkg/domain-errors"
)

// OrderItem is a line item owned by exactly one Order. Its total price is
// derived from unit price and quantity and is never set directly.
type OrderItem struct {
	productName        string
	productDescription string
	quantity           int
	unitPrice          Money
	totalPrice         Money
	order              *Order
}

func NewOrderItem(productName, productDescription string, quantity int, unitPrice Money) (*OrderItem, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "product name cannot be blank")
	}
	if strings.TrimSpace(productDescription) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "product description cannot be blank")
	}
	if quantity < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "quantity cannot be negative")
	}
	if unitPrice.Currency() == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unit price is required")
	}
	item := &OrderItem{
		productName:        productName,
		productDescription: productDescription,
		quantity:           quantity,
		unitPrice:          unitPrice,
	}
	item.recalculateTotal()
	return item, nil
}

// RehydrateOrderItem rebuilds an item from storage without re-validating
// caller-supplied text, which was validated on the original write.
func RehydrateOrderItem(productName, productDescription string, quantity int, unitPrice Money) *OrderItem {
	item := &OrderItem{
		productName:        productName,
		productDescription: productDescription,
		quantity:           quantity,
		unitPrice:          unitPrice,
	}
	item.recalculateTotal()
	return item
}

func (i *OrderItem) recalculateTotal() {
	i.totalPrice = i.unitPrice.Multiply(decimal.NewFromInt(int64(i.quantity)))
}

// UpdateQuantity replaces the quantity and recomputes the total price.
func (i *OrderItem) UpdateQuantity(quantity int) error {
	if quantity < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity cannot be negative")
	}
	i.quantity = quantity
	i.recalculateTotal()
	return nil
}

// AttachTo sets the required back-reference to the owning order.
func (i *OrderItem) AttachTo(order *Order) error {
	if order == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "order cannot be nil")
	}
	i.order = order
	return nil
}

func (i *OrderItem) ProductName() string        { return i.productName }
func (i *OrderItem) ProductDescription() string { return i.productDescription }
func (i *OrderItem) Quantity() int              { return i.quantity }
func (i *OrderItem) UnitPrice() Money           { return i.unitPrice }
func (i *OrderItem) TotalPrice() Money          { return i.totalPrice }
func (i *OrderItem) Order() *Order              { return i.order }
