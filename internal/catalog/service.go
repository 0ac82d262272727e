package catalog

import (
	"context"

	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/nikshi-16/amazon/internal/repository"
)

const defaultListLimit = 60

// Service serves the product browsing surface of the storefront.
type Service struct {
	products repository.ProductRepository
}

func NewService(products repository.ProductRepository) *Service {
	return &Service{products: products}
}

func (s *Service) List(ctx context.Context, tag string, limit int64) ([]domain.Product, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.products.List(ctx, tag, limit)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}
