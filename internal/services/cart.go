package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	repository "github.com/shopbay/storefront-platform/internal/repositories"
)

// CartService maintains the per-user line collection. Invariants: at most
// one line per product, quantity >= 1, and the subtotal is recomputed from
// the lines on every read so it can never drift.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	lines, err := s.cartRepo.GetCartLines(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	cart := &models.Cart{
		UserID: userID,
		Items:  lines,
	}
	cart.Recalculate()

	return cart, nil
}

// AddItem merges into an existing line for the same product or appends a new
// one. Stock is advisory only and never blocks the add.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to verify product").WithError(err)
	}

	if err := s.cartRepo.UpsertItem(ctx, userID, req.ProductID, req.Quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets the line's quantity; zero or negative removes the line
// entirely. A missing line is a silent no-op.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	if req.Quantity <= 0 {
		return s.RemoveItem(ctx, userID, req.ProductID)
	}

	if _, err := s.cartRepo.SetQuantity(ctx, userID, req.ProductID, req.Quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error) {

	if err := s.cartRepo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
