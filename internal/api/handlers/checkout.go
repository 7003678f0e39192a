package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopbay/storefront-platform/internal/api/middleware"
	"github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	service "github.com/shopbay/storefront-platform/internal/services"
	"github.com/shopbay/storefront-platform/internal/utils"
	"github.com/shopbay/storefront-platform/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Quote returns the totals for the current cart without placing anything.
func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		totals, err := h.checkoutService.Quote(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, totals)
	}
}

func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PlaceOrderRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		confirmation, err := h.checkoutService.PlaceOrder(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed", slog.String("confirmation", confirmation.ConfirmationNumber))
		response.Success(w, http.StatusCreated, confirmation)
	}
}
