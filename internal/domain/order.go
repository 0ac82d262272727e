package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a snapshot of a product line at the time it was added to the
// cart. CountInStock is the stock recorded at add time, quantity checks run
// against it.
type OrderItem struct {
	ClientID     string          `json:"client_id"`
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Image        string          `json:"image,omitempty"`
	Color        string          `json:"color,omitempty"`
	Size         string          `json:"size,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CountInStock int             `json:"count_in_stock"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// PaymentResult is the persisted record of a provider round trip. After
// phase 1 only ID is set; phase 2 overwrites it with the verified capture.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
	PricePaid    string `json:"price_paid"`
}

type Order struct {
	ID                   string           `json:"id"`
	UserID               string           `json:"user_id"`
	Items                []OrderItem      `json:"items"`
	ShippingAddress      ShippingAddress  `json:"shipping_address"`
	PaymentMethod        string           `json:"payment_method"`
	ItemsPrice           decimal.Decimal  `json:"items_price"`
	ShippingPrice        decimal.Decimal  `json:"shipping_price"`
	TaxPrice             decimal.Decimal  `json:"tax_price"`
	TotalPrice           decimal.Decimal  `json:"total_price"`
	ExpectedDeliveryDate time.Time        `json:"expected_delivery_date"`
	IsPaid               bool             `json:"is_paid"`
	PaidAt               *time.Time       `json:"paid_at,omitempty"`
	PaymentResult        *PaymentResult   `json:"payment_result,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type PaymentMethod string

const (
	PaymentMethodPayPal         PaymentMethod = "PayPal"
	PaymentMethodCashOnDelivery PaymentMethod = "CashOnDelivery"
)
