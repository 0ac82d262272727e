package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nikshi-16/amazon/internal/domain"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// SetPaymentResult records the provider-issued id after intent creation.
	SetPaymentResult(ctx context.Context, id string, result *domain.PaymentResult) error
	// SetPaid flips the paid flag and stores the verified capture in one
	// document update.
	SetPaid(ctx context.Context, id string, paidAt time.Time, result *domain.PaymentResult) error
	// UserEmail resolves the email of the referenced order owner.
	UserEmail(ctx context.Context, userID string) (string, error)
}

type ProductRepository interface {
	List(ctx context.Context, tag string, limit int64) ([]domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
}
