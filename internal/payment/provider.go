package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusCompleted is the provider sentinel for a finalized capture. Anything
// else means the money did not move.
const StatusCompleted = "COMPLETED"

// ProviderOrder is the provider-side order created in phase 1.
type ProviderOrder struct {
	ID     string
	Status string
}

// Capture is the provider's response to a capture call.
type Capture struct {
	ID         string
	Status     string
	PayerEmail string
	PricePaid  string
}

// Provider is the payment provider round-trip surface. It is injected so
// tests can substitute a double.
type Provider interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*ProviderOrder, error)
	CapturePayment(ctx context.Context, providerOrderID string) (*Capture, error)
}
