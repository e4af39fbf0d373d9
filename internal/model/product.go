package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	SKU         string          `json:"sku" db:"sku"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Category    *Category       `json:"category" db:"-"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// ProductSummary is the product projection embedded in coupon relations.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

// Category groups products.
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ProductPage is a page of products with pagination metadata.
type ProductPage struct {
	Products      []Product `json:"products"`
	TotalProducts int       `json:"totalProducts"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
}
