package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand,omitempty"`
	Description  string          `json:"description,omitempty"`
	Images       []string        `json:"images,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
	Sizes        []string        `json:"sizes,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ListPrice    decimal.Decimal `json:"list_price"`
	CountInStock int             `json:"count_in_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
