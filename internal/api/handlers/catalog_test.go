package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopbay/storefront-platform/internal/api/handlers"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/shopbay/storefront-platform/internal/services/mocks"
	"github.com/shopbay/storefront-platform/internal/testutils"
	"github.com/shopbay/storefront-platform/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCatalogTest() (*mocks.CatalogService, *handlers.CatalogHandler) {
	mockCatalogService := new(mocks.CatalogService)
	catalogHandler := handlers.NewCatalogHandler(mockCatalogService)

	return mockCatalogService, catalogHandler
}

func TestListProducts(t *testing.T) {
	t.Run("Success - No Filters", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products", nil, nil)
		recorder := httptest.NewRecorder()

		page := &models.PaginatedResponse{
			Data:     []*models.Product{{ID: "prod-1", Name: "Wireless Mouse", Price: 24.99}},
			Total:    1,
			Page:     1,
			PageSize: 20,
		}

		mockCatalogService.On("ListProducts", mock.Anything, models.ListProductsOptions{}).Return(page, nil).Once()

		// Act
		catalogHandler.ListProducts()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)

		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Success - Category And Search Filters", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products?category=tech-gadgets&search=mouse&page=2&pageSize=5", nil, nil)
		recorder := httptest.NewRecorder()

		expectedOpts := models.ListProductsOptions{
			CategoryID: "tech-gadgets",
			Search:     "mouse",
			Page:       2,
			PageSize:   5,
		}

		page := &models.PaginatedResponse{Data: []*models.Product{}, Total: 0, Page: 2, PageSize: 5}

		mockCatalogService.On("ListProducts", mock.Anything, expectedOpts).Return(page, nil).Once()

		// Act
		catalogHandler.ListProducts()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Success - Non-Numeric Paging Falls Back To Zero", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products?page=abc&pageSize=xyz", nil, nil)
		recorder := httptest.NewRecorder()

		page := &models.PaginatedResponse{Data: []*models.Product{}, Total: 0, Page: 1, PageSize: 20}

		mockCatalogService.On("ListProducts", mock.Anything, models.ListProductsOptions{}).Return(page, nil).Once()

		// Act
		catalogHandler.ListProducts()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products", nil, nil)
		recorder := httptest.NewRecorder()

		mockCatalogService.On("ListProducts", mock.Anything, mock.Anything).Return(nil, appErrors.DatabaseError("Failed to list products")).Once()

		// Act
		catalogHandler.ListProducts()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)

		mockCatalogService.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Success - Retrieve Product", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products/prod-1", nil, map[string]string{"id": "prod-1"})
		recorder := httptest.NewRecorder()

		product := &models.Product{ID: "prod-1", Name: "Wireless Mouse", Price: 24.99, InStock: true}

		mockCatalogService.On("GetProduct", mock.Anything, "prod-1").Return(product, nil).Once()

		// Act
		catalogHandler.GetProduct()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Failure - Missing ID", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products/", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		catalogHandler.GetProduct()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCatalogService.AssertNotCalled(t, "GetProduct")
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products/missing", nil, map[string]string{"id": "missing"})
		recorder := httptest.NewRecorder()

		mockCatalogService.On("GetProduct", mock.Anything, "missing").Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		catalogHandler.GetProduct()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "Product not found", resp.Error.Message)

		mockCatalogService.AssertExpectations(t)
	})
}

func TestListCategories(t *testing.T) {
	t.Run("Success - Retrieve Categories", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/categories", nil, nil)
		recorder := httptest.NewRecorder()

		categories := []*models.Category{
			{ID: "tech-gadgets", Name: "Tech Gadgets", ProductCount: 12},
			{ID: "home-office", Name: "Home Office", ProductCount: 8},
		}

		mockCatalogService.On("ListCategories", mock.Anything).Return(categories, nil).Once()

		// Act
		catalogHandler.ListCategories()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/categories", nil, nil)
		recorder := httptest.NewRecorder()

		mockCatalogService.On("ListCategories", mock.Anything).Return(nil, appErrors.DatabaseError("Failed to list categories")).Once()

		// Act
		catalogHandler.ListCategories()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockCatalogService.AssertExpectations(t)
	})
}

func TestGetCategory(t *testing.T) {
	t.Run("Success - Retrieve Category", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/categories/tech-gadgets", nil, map[string]string{"id": "tech-gadgets"})
		recorder := httptest.NewRecorder()

		category := &models.Category{ID: "tech-gadgets", Name: "Tech Gadgets"}

		mockCatalogService.On("GetCategory", mock.Anything, "tech-gadgets").Return(category, nil).Once()

		// Act
		catalogHandler.GetCategory()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Failure - Missing ID", func(t *testing.T) {
		// Arrange
		mockCatalogService, catalogHandler := setupCatalogTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/categories/", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		catalogHandler.GetCategory()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCatalogService.AssertNotCalled(t, "GetCategory")
	})
}
