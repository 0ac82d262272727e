package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nikshi-16/amazon/internal/cache"
	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/nikshi-16/amazon/internal/pricing"
	"github.com/nikshi-16/amazon/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

var ErrMissingShippingAddress = errors.New("cart has no shipping address")

// Service turns carts into persisted orders and serves order reads through
// the cache.
type Service struct {
	orders repository.OrderRepository
	cache  cache.OrderCache
	logger zerolog.Logger
	sfg    singleflight.Group // Prevents cache stampede
}

func NewService(orders repository.OrderRepository, orderCache cache.OrderCache, logger zerolog.Logger) *Service {
	return &Service{
		orders: orders,
		cache:  orderCache,
		logger: logger,
	}
}

// CreateOrder is the single point where a cart becomes an immutable priced
// order. Any price fields on the submitted cart are discarded and recomputed;
// the order is persisted unpaid. Returns the new order id.
func (s *Service) CreateOrder(ctx context.Context, userID string, cart *domain.Cart) (string, error) {
	if userID == "" {
		return "", ErrNotAuthenticated
	}
	if cart.ShippingAddress == nil {
		return "", ErrMissingShippingAddress
	}

	now := time.Now()
	quote, err := pricing.Calculate(pricing.Input{
		Items:             cart.Items,
		ShippingAddress:   cart.ShippingAddress,
		DeliveryDateIndex: cart.DeliveryDateIndex,
	}, now)
	if err != nil {
		return "", err
	}

	order := &domain.Order{
		ID:                   uuid.New().String(),
		UserID:               userID,
		Items:                cart.Items,
		ShippingAddress:      *cart.ShippingAddress,
		PaymentMethod:        cart.PaymentMethod,
		ItemsPrice:           quote.ItemsPrice,
		ShippingPrice:        *quote.ShippingPrice,
		TaxPrice:             quote.TaxPrice,
		TotalPrice:           quote.TotalPrice,
		ExpectedDeliveryDate: quote.ExpectedDeliveryDate,
		IsPaid:               false,
		CreatedAt:            now,
	}

	if err := Validate(order); err != nil {
		return "", err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to persist order")
		return "", err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Str("total_price", order.TotalPrice.String()).
		Int("items_count", len(order.Items)).
		Msg("order created")

	return order.ID, nil
}

// GetOrder reads through the order cache. Cache failures degrade to the
// repository, they never fail the read.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	v, err, _ := s.sfg.Do(orderID, func() (interface{}, error) {
		order, err := s.cache.Get(ctx, orderID)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("order_id", orderID).Msg("order cache get failed")
		}

		order, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), orderID, order); errSet != nil {
				s.logger.Warn().Err(errSet).Str("order_id", orderID).Msg("order cache set failed")
			}
		}()

		return order, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Order), nil
}

func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.orders.FindByUser(ctx, userID)
}
