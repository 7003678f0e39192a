package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopbay/storefront-platform/internal/config"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
)

// CalculateTotals derives the order totals from a subtotal. It is a pure
// function: calling it twice with the same subtotal yields identical totals,
// which keeps the displayed quote and the submitted order consistent.
func CalculateTotals(rules config.Checkout, subtotal float64) models.CheckoutTotals {

	shipping := rules.ShippingFee
	if subtotal > rules.FreeShippingThreshold {
		shipping = 0
	}

	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * rules.TaxRate)

	return models.CheckoutTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    roundCents(subtotal + shipping + tax),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type CheckoutService interface {
	Quote(ctx context.Context, userID uuid.UUID) (*models.CheckoutTotals, error)
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error)
}

type checkoutService struct {
	cartService CartService
	rules       config.Checkout
}

func NewCheckoutService(cartService CartService, rules config.Checkout) CheckoutService {
	return &checkoutService{cartService: cartService, rules: rules}
}

func (s *checkoutService) Quote(ctx context.Context, userID uuid.UUID) (*models.CheckoutTotals, error) {

	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := CalculateTotals(s.rules, cart.Subtotal)

	return &totals, nil
}

// PlaceOrder simulates placement: checkout is disallowed on an empty cart,
// the totals are computed from the live subtotal, and the cart is cleared on
// success. Payment and fulfillment happen outside this system.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error) {

	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.BadRequestError("Cannot check out with an empty cart")
	}

	totals := CalculateTotals(s.rules, cart.Subtotal)

	confirmation := &models.OrderConfirmation{
		ConfirmationNumber: newConfirmationNumber(),
		Totals:             totals,
		PlacedAt:           time.Now(),
	}

	if err := s.cartService.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return confirmation, nil
}

func newConfirmationNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))

	return fmt.Sprintf("ORD-%s", suffix[:12])
}
