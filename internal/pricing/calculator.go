// Package pricing computes the derived price fields of a cart or order. It is
// the single calculator both the live cart quote and order creation go
// through, so the two call sites can never disagree on rounding.
package pricing

import (
	"errors"
	"time"

	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the items price regardless of address or delivery
// tier selection.
var TaxRate = decimal.NewFromFloat(0.15)

var ErrInvalidDeliveryIndex = errors.New("delivery date index out of range")

type Input struct {
	Items             []domain.OrderItem
	ShippingAddress   *domain.ShippingAddress
	DeliveryDateIndex *int
}

// Quote holds the recomputed price fields. ShippingPrice is nil until a
// shipping address is known.
type Quote struct {
	ItemsPrice           decimal.Decimal
	ShippingPrice        *decimal.Decimal
	TaxPrice             decimal.Decimal
	TotalPrice           decimal.Decimal
	DeliveryDateIndex    int
	ExpectedDeliveryDate time.Time
}

// Calculate prices the given items. now anchors the expected delivery date;
// everything else is a pure function of the input. A missing delivery index
// resolves to the last (cheapest) tier.
func Calculate(in Input, now time.Time) (*Quote, error) {
	idx := len(domain.AvailableDeliveryDates) - 1
	if in.DeliveryDateIndex != nil {
		idx = *in.DeliveryDateIndex
	}
	if idx < 0 || idx >= len(domain.AvailableDeliveryDates) {
		return nil, ErrInvalidDeliveryIndex
	}
	tier := domain.AvailableDeliveryDates[idx]

	itemsPrice := decimal.Zero
	for _, it := range in.Items {
		itemsPrice = itemsPrice.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	itemsPrice = round2(itemsPrice)

	var shippingPrice *decimal.Decimal
	if in.ShippingAddress != nil {
		p := tier.ShippingPrice
		if tier.FreeShippingMinPrice.IsPositive() && itemsPrice.GreaterThanOrEqual(tier.FreeShippingMinPrice) {
			p = decimal.Zero
		}
		shippingPrice = &p
	}

	taxPrice := round2(itemsPrice.Mul(TaxRate))

	total := itemsPrice
	if shippingPrice != nil {
		total = total.Add(round2(*shippingPrice))
	}
	total = round2(total.Add(round2(taxPrice)))

	return &Quote{
		ItemsPrice:           itemsPrice,
		ShippingPrice:        shippingPrice,
		TaxPrice:             taxPrice,
		TotalPrice:           total,
		DeliveryDateIndex:    idx,
		ExpectedDeliveryDate: now.AddDate(0, 0, tier.DaysToDeliver),
	}, nil
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
