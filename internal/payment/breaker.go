package payment

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerProvider wraps a Provider with a circuit breaker so a degraded
// payment gateway fails fast instead of tying up request handlers for the
// full HTTP timeout. Both phases share one breaker: if order creation is
// failing, captures are in trouble too.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker[any]
}

func NewBreakerProvider(inner Provider, logger zerolog.Logger) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        "payment-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("payment provider breaker state changed")
		},
	}
	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (p *BreakerProvider) CreateOrder(ctx context.Context, amount decimal.Decimal) (*ProviderOrder, error) {
	v, err := p.breaker.Execute(func() (any, error) {
		return p.inner.CreateOrder(ctx, amount)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProviderOrder), nil
}

func (p *BreakerProvider) CapturePayment(ctx context.Context, providerOrderID string) (*Capture, error) {
	v, err := p.breaker.Execute(func() (any, error) {
		return p.inner.CapturePayment(ctx, providerOrderID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Capture), nil
}
