package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nikshi-16/amazon/internal/domain"
)

// ValidationError carries field-level detail for a rejected order shape.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

// Validate checks a fully priced order before it is persisted. It returns nil
// or a *ValidationError listing every offending field.
func Validate(o *domain.Order) error {
	fields := map[string]string{}

	if o.UserID == "" {
		fields["user"] = "is required"
	}
	if len(o.Items) == 0 {
		fields["items"] = "must contain at least one item"
	}
	for i, it := range o.Items {
		switch {
		case it.ProductID == "":
			fields[fmt.Sprintf("items[%d].product_id", i)] = "is required"
		case it.Name == "":
			fields[fmt.Sprintf("items[%d].name", i)] = "is required"
		case it.Slug == "":
			fields[fmt.Sprintf("items[%d].slug", i)] = "is required"
		case it.ClientID == "":
			fields[fmt.Sprintf("items[%d].client_id", i)] = "is required"
		case it.Quantity < 1:
			fields[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		case it.Quantity > it.CountInStock:
			fields[fmt.Sprintf("items[%d].quantity", i)] = "exceeds count in stock"
		case it.Price.IsNegative():
			fields[fmt.Sprintf("items[%d].price", i)] = "must not be negative"
		}
	}

	addr := o.ShippingAddress
	if addr.FullName == "" || addr.Street == "" || addr.City == "" ||
		addr.PostalCode == "" || addr.Country == "" || addr.Phone == "" {
		fields["shipping_address"] = "is incomplete"
	}
	if o.PaymentMethod == "" {
		fields["payment_method"] = "is required"
	}

	if o.ItemsPrice.IsNegative() {
		fields["items_price"] = "must not be negative"
	}
	if o.ShippingPrice.IsNegative() {
		fields["shipping_price"] = "must not be negative"
	}
	if o.TaxPrice.IsNegative() {
		fields["tax_price"] = "must not be negative"
	}
	if o.TotalPrice.IsNegative() {
		fields["total_price"] = "must not be negative"
	}
	if o.ExpectedDeliveryDate.IsZero() {
		fields["expected_delivery_date"] = "is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
