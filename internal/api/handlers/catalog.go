package handlers

import (
	"net/http"
	"strconv"

	"github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	service "github.com/shopbay/storefront-platform/internal/services"
	"github.com/shopbay/storefront-platform/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts serves both category browsing and search, e.g.
// GET /products?category=tech-gadgets&search=headphones&page=1&pageSize=20
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		page, _ := strconv.Atoi(query.Get("page"))
		pageSize, _ := strconv.Atoi(query.Get("pageSize"))

		opts := models.ListProductsOptions{
			CategoryID: query.Get("category"),
			Search:     query.Get("search"),
			Page:       page,
			PageSize:   pageSize,
		}

		products, err := h.catalogService.ListProducts(r.Context(), opts)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")

		if id == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *CatalogHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")

		if id == "" {
			response.Error(w, errors.BadRequestError("Category ID is required"))
			return
		}

		category, err := h.catalogService.GetCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}
