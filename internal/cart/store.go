package cart

import (
	"context"
	"errors"

	"github.com/nikshi-16/amazon/internal/domain"
)

// Store persists one cart per user under a dedicated key.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCartNotFound = errors.New("cart not found")
