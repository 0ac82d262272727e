package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the explicit cart-state object for one user. Price fields are
// derived, the pricing calculator overwrites them after every mutation and
// again at order creation; values submitted by a client are never trusted.
type Cart struct {
	UserID               string           `json:"user_id"`
	Items                []OrderItem      `json:"items"`
	ItemsPrice           decimal.Decimal  `json:"items_price"`
	ShippingPrice        *decimal.Decimal `json:"shipping_price,omitempty"`
	TaxPrice             *decimal.Decimal `json:"tax_price,omitempty"`
	TotalPrice           decimal.Decimal  `json:"total_price"`
	PaymentMethod        string           `json:"payment_method,omitempty"`
	DeliveryDateIndex    *int             `json:"delivery_date_index,omitempty"`
	ShippingAddress      *ShippingAddress `json:"shipping_address,omitempty"`
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// FindItem returns the line matching the product/variant pair, or nil.
func (c *Cart) FindItem(productID, color, size string) *OrderItem {
	for i := range c.Items {
		it := &c.Items[i]
		if it.ProductID == productID && it.Color == color && it.Size == size {
			return it
		}
	}
	return nil
}

// FindItemByClientID returns the line with the given client correlation id,
// or nil.
func (c *Cart) FindItemByClientID(clientID string) *OrderItem {
	for i := range c.Items {
		if c.Items[i].ClientID == clientID {
			return &c.Items[i]
		}
	}
	return nil
}
