// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetCartLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartLine), args.Error(1)
}

func (m *CartRepository) UpsertItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)

	return args.Error(0)
}

func (m *CartRepository) SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (bool, error) {
	args := m.Called(ctx, userID, productID, quantity)

	return args.Bool(0), args.Error(1)
}

func (m *CartRepository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

func (m *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context, opts models.ListProductsOptions) ([]*models.Product, int, error) {
	args := m.Called(ctx, opts)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type WishlistRepository struct {
	mock.Mock
}

func (m *WishlistRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.WishlistItem), args.Error(1)
}

func (m *WishlistRepository) AddItem(ctx context.Context, userID uuid.UUID, productID string) (*models.WishlistItem, error) {
	args := m.Called(ctx, userID, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.WishlistItem), args.Error(1)
}

func (m *WishlistRepository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

func (m *WishlistRepository) Contains(ctx context.Context, userID uuid.UUID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)

	return args.Bool(0), args.Error(1)
}

type SurveyRepository struct {
	mock.Mock
}

func (m *SurveyRepository) InsertWithAllocation(ctx context.Context, resp *models.SurveyResponse, promoLimit int) (int, error) {
	args := m.Called(ctx, resp, promoLimit)

	return args.Int(0), args.Error(1)
}

func (m *SurveyRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *SurveyRepository) CountResponses(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
