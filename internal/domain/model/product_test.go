package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductRequestValidate(t *testing.T) {
	valid := CreateProductRequest{
		NurseryID:  "n-1",
		Name:       "Monstera Deliciosa",
		Category:   "indoor",
		PriceMinor: 49900,
		Stock:      12,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateProductRequest)
	}{
		{"empty name", func(r *CreateProductRequest) { r.Name = "  " }},
		{"name too long", func(r *CreateProductRequest) { r.Name = strings.Repeat("x", 256) }},
		{"missing nursery", func(r *CreateProductRequest) { r.NurseryID = "" }},
		{"zero price", func(r *CreateProductRequest) { r.PriceMinor = 0 }},
		{"negative stock", func(r *CreateProductRequest) { r.Stock = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateProductRequestValidate(t *testing.T) {
	empty := UpdateProductRequest{}
	assert.Error(t, empty.Validate())

	price := int64(1500)
	ok := UpdateProductRequest{PriceMinor: &price}
	assert.NoError(t, ok.Validate())

	bad := int64(0)
	assert.Error(t, (&UpdateProductRequest{PriceMinor: &bad}).Validate())
}

func TestCartLineSubtotal(t *testing.T) {
	line := CartLine{PriceMinor: 2500, Quantity: 3}
	assert.Equal(t, int64(7500), line.Subtotal())
}
