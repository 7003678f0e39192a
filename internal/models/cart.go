package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product in a user's cart. The product fields are a
// denormalized snapshot joined at read time so the cart can render without
// a second catalog round-trip.
type CartLine struct {
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	ImageURL  string    `json:"image_url"`
	InStock   bool      `json:"in_stock"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is the per-user line collection, ordered by insertion. Subtotal and
// Count are always recomputed from the lines, never tracked independently.
type Cart struct {
	UserID   uuid.UUID  `json:"user_id"`
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Count    int        `json:"count"`
}

// Recalculate rebuilds the derived fields from scratch. Count sums quantities
// across lines, which is distinct from the number of lines.
func (c *Cart) Recalculate() {
	var subtotal float64

	var count int

	for i := range c.Items {
		c.Items[i].LineTotal = c.Items[i].UnitPrice * float64(c.Items[i].Quantity)
		subtotal += c.Items[i].LineTotal
		count += c.Items[i].Quantity
	}

	c.Subtotal = subtotal
	c.Count = count
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}
