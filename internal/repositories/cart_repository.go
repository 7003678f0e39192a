package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/shopbay/storefront-platform/internal/utils"
)

type CartRepository interface {
	GetCartLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	UpsertItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error
	SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (bool, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetCartLines returns the user's lines in insertion order, each joined with
// a snapshot of the product so the cart renders without a catalog re-fetch.
func (r *cartRepository) GetCartLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.product_id, p.name, p.price, p.image_url, p.in_stock,
		       ci.quantity, ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.id`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}

	defer rows.Close()

	var lines []models.CartLine

	for rows.Next() {
		var line models.CartLine

		err := rows.Scan(&line.ID, &line.ProductID, &line.Name, &line.UnitPrice,
			&line.ImageURL, &line.InStock, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// UpsertItem appends a new line or increments the existing one in a single
// statement, so at most one line per product can ever exist.
func (r *cartRepository) UpsertItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`

	_, err := r.DB.ExecContext(dbCtx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("upserting cart item: %w", err)
	}

	return nil
}

// SetQuantity overwrites the line's quantity and reports whether a line was
// actually present.
func (r *cartRepository) SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, userID, productID)
	if err != nil {
		return false, fmt.Errorf("updating cart item quantity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, productID); err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, userID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}

	return nil
}
