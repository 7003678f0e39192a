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

type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Add(ctx context.Context, userID uuid.UUID, productID string) (*models.WishlistItem, error)
	Remove(ctx context.Context, userID uuid.UUID, productID string) error
	Contains(ctx context.Context, userID uuid.UUID, productID string) (bool, error)
}

type wishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
}

func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{repo: repo, productRepo: productRepo}
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {

	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to retrieve wishlist").WithError(err)
	}

	return items, nil
}

func (s *wishlistService) Add(ctx context.Context, userID uuid.UUID, productID string) (*models.WishlistItem, error) {

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to verify product").WithError(err)
	}

	item, err := s.repo.AddItem(ctx, userID, productID)
	if err != nil {

		if repository.IsUniqueViolation(err) {
			return nil, appErrors.DuplicateEntryError("Product is already in the wishlist")
		}

		return nil, appErrors.DatabaseError("Failed to add wishlist item").WithError(err)
	}

	item.Name = product.Name
	item.UnitPrice = product.Price
	item.ImageURL = product.ImageURL
	item.InStock = product.InStock

	return item, nil
}

func (s *wishlistService) Remove(ctx context.Context, userID uuid.UUID, productID string) error {

	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return appErrors.DatabaseError("Failed to remove wishlist item").WithError(err)
	}

	return nil
}

func (s *wishlistService) Contains(ctx context.Context, userID uuid.UUID, productID string) (bool, error) {

	found, err := s.repo.Contains(ctx, userID, productID)
	if err != nil {
		return false, appErrors.DatabaseError("Failed to check wishlist").WithError(err)
	}

	return found, nil
}
