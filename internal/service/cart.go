package service

import (
	"context"

	"github.com/plantflix/marketplace/internal/core"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// CartServiceOptions groups dependencies for CartService.
type CartServiceOptions struct {
	Cart     core.CartRepository
	Products core.ProductRepository
}

// CartService manages the shopper's persisted cart.
type CartService struct {
	cart     core.CartRepository
	products core.ProductRepository
}

// NewCartService constructs a new CartService.
func NewCartService(opts CartServiceOptions) *CartService {
	return &CartService{cart: opts.Cart, products: opts.Products}
}

// CartView is the cart page payload: joined lines plus the running subtotal.
type CartView struct {
	Lines         []model.CartLine `json:"lines"`
	SubtotalMinor int64            `json:"subtotal_minor"`
}

// Get returns the caller's cart with the subtotal computed.
func (s *CartService) Get(ctx context.Context, userID string) (*CartView, error) {
	lines, err := s.cart.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Lines: lines}
	for _, line := range lines {
		view.SubtotalMinor += line.Subtotal()
	}
	return view, nil
}

// Add puts a product into the caller's cart after checking it is still
// purchasable.
func (s *CartService) Add(
	ctx context.Context,
	userID string,
	req *model.AddCartItemRequest,
) (*model.CartItem, error) {
	if req == nil {
		return nil, apperrors.Validation("add cart item request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, apperrors.Conflict("product is not available")
	}
	if product.Stock < req.Quantity {
		return nil, apperrors.Conflict("requested quantity exceeds available stock")
	}

	return s.cart.Add(ctx, userID, req)
}

// UpdateQuantity sets the absolute quantity of a cart line.
func (s *CartService) UpdateQuantity(
	ctx context.Context,
	userID, itemID string,
	req model.UpdateCartItemRequest,
) (*model.CartItem, error) {
	return s.cart.UpdateQuantity(ctx, userID, itemID, req)
}

// Remove deletes a cart line.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (bool, error) {
	return s.cart.Remove(ctx, userID, itemID)
}

// Clear empties the caller's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.cart.Clear(ctx, userID)
}
