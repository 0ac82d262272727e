package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/nikshi-16/amazon/internal/pricing"
	"github.com/rs/zerolog"
)

var ErrInsufficientStock = errors.New("not enough items in stock")

var ErrItemNotFound = errors.New("item not found in cart")

// Service manages the cart-state object. Every mutation runs the pricing
// calculator before the cart is persisted, so stored price fields always
// reflect the current line items.
type Service struct {
	store  Store
	logger zerolog.Logger
}

func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the stored cart, or a fresh empty cart when none exists yet.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem appends the line or merges it into an existing line with the same
// product and variant. The requested quantity must not exceed the stock count
// recorded on the item; on violation the stored cart is left untouched.
// Returns the client id of the affected line.
func (s *Service) AddItem(ctx context.Context, userID string, item domain.OrderItem, quantity int) (string, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	existing := cart.FindItem(item.ProductID, item.Color, item.Size)
	if existing != nil {
		if existing.CountInStock < existing.Quantity+quantity {
			return "", ErrInsufficientStock
		}
		existing.Quantity += quantity
	} else {
		if item.CountInStock < quantity {
			return "", ErrInsufficientStock
		}
		item.Quantity = quantity
		if item.ClientID == "" {
			item.ClientID = uuid.New().String()
		}
		cart.Items = append(cart.Items, item)
		existing = &cart.Items[len(cart.Items)-1]
	}

	if err := s.repriceAndSave(ctx, cart); err != nil {
		return "", err
	}
	return existing.ClientID, nil
}

// UpdateItem sets the quantity of the line with the given client id.
func (s *Service) UpdateItem(ctx context.Context, userID, clientID string, quantity int) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	item := cart.FindItemByClientID(clientID)
	if item == nil {
		return ErrItemNotFound
	}
	if item.CountInStock < quantity {
		return ErrInsufficientStock
	}
	item.Quantity = quantity

	return s.repriceAndSave(ctx, cart)
}

func (s *Service) RemoveItem(ctx context.Context, userID, clientID string) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for i, item := range cart.Items {
		if item.ClientID == clientID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrItemNotFound
	}

	return s.repriceAndSave(ctx, cart)
}

func (s *Service) SetShippingAddress(ctx context.Context, userID string, address domain.ShippingAddress) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	cart.ShippingAddress = &address
	return s.repriceAndSave(ctx, cart)
}

func (s *Service) SetPaymentMethod(ctx context.Context, userID, method string) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	cart.PaymentMethod = method
	return s.repriceAndSave(ctx, cart)
}

// SetDeliveryDate selects a tier by index into the fixed delivery-date list.
func (s *Service) SetDeliveryDate(ctx context.Context, userID string, index int) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	cart.DeliveryDateIndex = &index
	return s.repriceAndSave(ctx, cart)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	err := s.store.Delete(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return err
	}
	return nil
}

func (s *Service) repriceAndSave(ctx context.Context, cart *domain.Cart) error {
	quote, err := pricing.Calculate(pricing.Input{
		Items:             cart.Items,
		ShippingAddress:   cart.ShippingAddress,
		DeliveryDateIndex: cart.DeliveryDateIndex,
	}, time.Now())
	if err != nil {
		return fmt.Errorf("failed to price cart: %w", err)
	}

	cart.ItemsPrice = quote.ItemsPrice
	cart.ShippingPrice = quote.ShippingPrice
	tax := quote.TaxPrice
	cart.TaxPrice = &tax
	cart.TotalPrice = quote.TotalPrice
	if cart.ShippingAddress != nil {
		d := quote.ExpectedDeliveryDate
		cart.ExpectedDeliveryDate = &d
	}
	cart.UpdatedAt = time.Now()

	return s.store.Save(ctx, cart)
}
