package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/shopbay/storefront-platform/internal/utils"
)

type WishlistRepository interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	AddItem(ctx context.Context, userID uuid.UUID, productID string) (*models.WishlistItem, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
	Contains(ctx context.Context, userID uuid.UUID, productID string) (bool, error)
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT wi.id, wi.product_id, p.name, p.price, p.image_url, p.in_stock, wi.created_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying wishlist items: %w", err)
	}

	defer rows.Close()

	var items []models.WishlistItem

	for rows.Next() {
		var item models.WishlistItem

		err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.UnitPrice,
			&item.ImageURL, &item.InStock, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID uuid.UUID, productID string) (*models.WishlistItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.WishlistItem{ProductID: productID}

	query := `
		INSERT INTO wishlist_items (user_id, product_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, productID); err != nil {
		return fmt.Errorf("removing wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) Contains(ctx context.Context, userID uuid.UUID, productID string) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	var one int

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&one)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
