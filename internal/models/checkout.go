package models

import (
	"time"
)

// CheckoutTotals is derived from the cart subtotal and never persisted on
// its own.
type CheckoutTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type ShippingAddress struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

type PlaceOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" validate:"required"`
}

// OrderConfirmation is the simulated placement result. Nothing is persisted;
// fulfillment is outside this system.
type OrderConfirmation struct {
	ConfirmationNumber string         `json:"confirmation_number"`
	Totals             CheckoutTotals `json:"totals"`
	PlacedAt           time.Time      `json:"placed_at"`
}
