package domain

import "github.com/shopspring/decimal"

// DeliveryDate is a shipping tier: flat price plus an optional free-shipping
// threshold. A zero FreeShippingMinPrice means the tier never ships free.
type DeliveryDate struct {
	Name                 string          `json:"name"`
	DaysToDeliver        int             `json:"days_to_deliver"`
	ShippingPrice        decimal.Decimal `json:"shipping_price"`
	FreeShippingMinPrice decimal.Decimal `json:"free_shipping_min_price"`
}

// AvailableDeliveryDates is the fixed tier catalog, fastest first. The last
// entry is the default when no index was selected.
var AvailableDeliveryDates = []DeliveryDate{
	{
		Name:                 "Tomorrow",
		DaysToDeliver:        1,
		ShippingPrice:        decimal.NewFromFloat(12.9),
		FreeShippingMinPrice: decimal.Zero,
	},
	{
		Name:                 "Next 3 Days",
		DaysToDeliver:        3,
		ShippingPrice:        decimal.NewFromFloat(6.9),
		FreeShippingMinPrice: decimal.Zero,
	},
	{
		Name:                 "Next 5 Days",
		DaysToDeliver:        5,
		ShippingPrice:        decimal.NewFromFloat(4.9),
		FreeShippingMinPrice: decimal.NewFromInt(35),
	},
}
