//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxProductNameLen = 255
	maxCategoryLen    = 100
)

// Product is a plant listed for sale by a nursery.
type Product struct {
	ID               string    `json:"id"                          db:"id"`
	NurseryID        string    `json:"nursery_id"                  db:"nursery_id"`
	Name             string    `json:"name"                        db:"name"`
	Description      string    `json:"description"                 db:"description"`
	Category         string    `json:"category"                    db:"category"`
	PriceMinor       int64     `json:"price_minor"                 db:"price_minor"`
	Stock            int       `json:"stock"                       db:"stock"`
	IsAvailable      bool      `json:"is_available"                db:"is_available"`
	ImageURL         *string   `json:"image_url,omitempty"         db:"image_url"`
	CareInstructions string    `json:"care_instructions"           db:"care_instructions"`
	ClimateZone      string    `json:"climate_zone"                db:"climate_zone"`
	Season           string    `json:"season"                      db:"season"`
	SKU              string    `json:"sku"                         db:"sku"`
	CreatedAt        time.Time `json:"created_at"                  db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"                  db:"updated_at"`
}

// CreateProductRequest represents parameters to create a Product.
// PriceMinor is the unit price in the currency's minor unit (paise).
type CreateProductRequest struct {
	NurseryID        string  `json:"nursery_id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Category         string  `json:"category"`
	PriceMinor       int64   `json:"price_minor"`
	Stock            int     `json:"stock"`
	IsAvailable      *bool   `json:"is_available,omitempty"`
	ImageURL         *string `json:"image_url,omitempty"`
	CareInstructions string  `json:"care_instructions,omitempty"`
	ClimateZone      string  `json:"climate_zone,omitempty"`
	Season           string  `json:"season,omitempty"`
	SKU              string  `json:"sku,omitempty"`
}

// UpdateProductRequest represents parameters to update a Product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Category         *string `json:"category,omitempty"`
	PriceMinor       *int64  `json:"price_minor,omitempty"`
	Stock            *int    `json:"stock,omitempty"`
	IsAvailable      *bool   `json:"is_available,omitempty"`
	ImageURL         *string `json:"image_url,omitempty"`
	CareInstructions *string `json:"care_instructions,omitempty"`
	ClimateZone      *string `json:"climate_zone,omitempty"`
	Season           *string `json:"season,omitempty"`
	SKU              *string `json:"sku,omitempty"`
}

// ProductsListOptions controls paging and filtering for the catalog.
// Q matches name via ILIKE substring; Category and NurseryID match exactly.
type ProductsListOptions struct {
	Limit         int
	Offset        int
	Q             *string
	Category      *string
	NurseryID     *string
	OnlyAvailable bool
}

// Validate validates CreateProductRequest.
func (r *CreateProductRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxProductNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.NurseryID) == "" {
		return errors.New("nursery_id is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Category) > maxCategoryLen {
		return errors.New("category cannot exceed 100 characters")
	}
	if r.PriceMinor <= 0 {
		return errors.New("price_minor must be at least 1")
	}
	if r.Stock < 0 {
		return errors.New("stock must be non-negative")
	}
	return nil
}

// Validate validates UpdateProductRequest.
func (r *UpdateProductRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Category == nil &&
		r.PriceMinor == nil && r.Stock == nil && r.IsAvailable == nil &&
		r.ImageURL == nil && r.CareInstructions == nil && r.ClimateZone == nil &&
		r.Season == nil && r.SKU == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name is required and cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxProductNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.PriceMinor != nil && *r.PriceMinor <= 0 {
		return errors.New("price_minor must be at least 1")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return errors.New("stock must be non-negative")
	}
	return nil
}
