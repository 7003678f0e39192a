package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopbay/storefront-platform/internal/api/handlers"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/shopbay/storefront-platform/internal/services/mocks"
	"github.com/shopbay/storefront-platform/internal/testutils"
	"github.com/shopbay/storefront-platform/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCheckoutTest() (*mocks.CheckoutService, *handlers.CheckoutHandler) {
	mockCheckoutService := new(mocks.CheckoutService)
	checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

	return mockCheckoutService, checkoutHandler
}

func validShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 Analytical Way",
		City:      "London",
		ZipCode:   "N1 9GU",
		Country:   "GB",
	}
}

func TestQuote(t *testing.T) {
	t.Run("Success - Paid Shipping Under Threshold", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		userID := uuid.New()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/checkout/quote", nil, userID, nil)
		recorder := httptest.NewRecorder()

		totals := &models.CheckoutTotals{Subtotal: 40.00, Shipping: 9.99, Tax: 3.20, Total: 53.19}

		mockCheckoutService.On("Quote", mock.Anything, userID).Return(totals, nil).Once()

		// Act
		checkoutHandler.Quote()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		assert.True(t, ok)
		assert.InDelta(t, 53.19, data["total"], 0.001)
		assert.InDelta(t, 9.99, data["shipping"], 0.001)

		mockCheckoutService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Authentication", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/checkout/quote", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.Quote()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "Authentication required", resp.Error.Message)

		mockCheckoutService.AssertNotCalled(t, "Quote")
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		userID := uuid.New()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/checkout/quote", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("Quote", mock.Anything, userID).Return(nil, appErrors.DatabaseError("Failed to load cart")).Once()

		// Act
		checkoutHandler.Quote()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockCheckoutService.AssertExpectations(t)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success - Order Placed", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		userID := uuid.New()

		reqBody := models.PlaceOrderRequest{ShippingAddress: validShippingAddress()}
		body, _ := json.Marshal(reqBody)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewBuffer(body), userID, nil)
		recorder := httptest.NewRecorder()

		confirmation := &models.OrderConfirmation{
			ConfirmationNumber: "ORD-4F7A9C2E81D3",
			Totals:             models.CheckoutTotals{Subtotal: 60.00, Shipping: 0, Tax: 4.80, Total: 64.80},
			PlacedAt:           time.Now(),
		}

		mockCheckoutService.On("PlaceOrder", mock.Anything, userID, mock.MatchedBy(func(r *models.PlaceOrderRequest) bool {
			return r.ShippingAddress.City == "London"
		})).Return(confirmation, nil).Once()

		// Act
		checkoutHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "ORD-4F7A9C2E81D3", data["confirmation_number"])

		mockCheckoutService.AssertExpectations(t)
	})

	t.Run("Failure - Incomplete Address", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		userID := uuid.New()

		address := validShippingAddress()
		address.City = ""
		reqBody := models.PlaceOrderRequest{ShippingAddress: address}
		body, _ := json.Marshal(reqBody)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewBuffer(body), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)

		mockCheckoutService.AssertNotCalled(t, "PlaceOrder")
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		userID := uuid.New()

		reqBody := models.PlaceOrderRequest{ShippingAddress: validShippingAddress()}
		body, _ := json.Marshal(reqBody)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewBuffer(body), userID, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("PlaceOrder", mock.Anything, userID, mock.Anything).Return(nil, appErrors.BadRequestError("Cannot check out with an empty cart")).Once()

		// Act
		checkoutHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "Cannot check out with an empty cart", resp.Error.Message)

		mockCheckoutService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Authentication", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/checkout", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCheckoutService.AssertNotCalled(t, "PlaceOrder")
	})
}
