package model

import (
	"errors"
	"strings"
	"time"
)

// CartItem is a line in a shopper's persisted cart. One row per
// (user, product); adding an existing product merges quantity.
type CartItem struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	ProductID string    `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity"   db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartLine is a cart item joined with the current product row, the shape
// the cart page and checkout consume.
type CartLine struct {
	ID         string  `json:"id"                  db:"id"`
	ProductID  string  `json:"product_id"          db:"product_id"`
	Name       string  `json:"name"                db:"name"`
	PriceMinor int64   `json:"price_minor"         db:"price_minor"`
	ImageURL   *string `json:"image_url,omitempty" db:"image_url"`
	Quantity   int     `json:"quantity"            db:"quantity"`
	NurseryID  string  `json:"nursery_id"          db:"nursery_id"`
	Stock      int     `json:"stock"               db:"stock"`
}

// Subtotal returns the line total in minor units.
func (l CartLine) Subtotal() int64 { return l.PriceMinor * int64(l.Quantity) }

// AddCartItemRequest represents parameters to add a product to a cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Validate validates AddCartItemRequest.
func (r *AddCartItemRequest) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return errors.New("product_id is required and cannot be empty")
	}
	if r.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	return nil
}

// UpdateCartItemRequest sets the absolute quantity for a cart item.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Validate validates UpdateCartItemRequest.
func (r *UpdateCartItemRequest) Validate() error {
	if r.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	return nil
}
