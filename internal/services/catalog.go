package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/shopbay/storefront-platform/internal/cache"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	repository "github.com/shopbay/storefront-platform/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CatalogService interface {
	ListProducts(ctx context.Context, opts models.ListProductsOptions) (*models.PaginatedResponse, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.Cache
	cacheTTL   time.Duration
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, c cache.Cache, cacheTTL time.Duration) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, opts models.ListProductsOptions) (*models.PaginatedResponse, error) {

	if opts.Page < 1 {
		opts.Page = 1
	}

	if opts.PageSize < 1 || opts.PageSize > maxPageSize {
		opts.PageSize = defaultPageSize
	}

	products, total, err := s.products.ListProducts(ctx, opts)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     products,
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}, nil
}

// GetProduct is cache-aside: a cache failure is logged and the database
// answers instead.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product

	if s.cache != nil {

		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		} else if hit {
			return &cached, nil
		}
	}

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, product, s.cacheTTL); err != nil {
			slog.Warn("Product cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {

	cacheKey := cache.Key(cache.CategoryKeyPrefix, id)

	var cached models.Category

	if s.cache != nil {

		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			slog.Warn("Category cache read failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		} else if hit {
			return &cached, nil
		}
	}

	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, category, s.cacheTTL); err != nil {
			slog.Warn("Category cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		}
	}

	return category, nil
}
