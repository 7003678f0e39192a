package models

import (
	"time"
)

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product is immutable after load as far as the storefront is concerned;
// OriginalPrice, when present, is the pre-discount price and is >= Price.
type Product struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	ImageURL      string    `json:"image_url"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	InStock       bool      `json:"in_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Category      *Category `json:"category,omitempty"`
}

// ListProductsOptions are the supported catalog filters. Search matches a
// case-insensitive substring of the name or description.
type ListProductsOptions struct {
	CategoryID string
	Search     string
	Page       int
	PageSize   int
}
