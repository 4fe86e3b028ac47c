package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	got, ok := ParseOrderStatus(" Shipped ")
	require.True(t, ok)
	assert.Equal(t, OrderStatusShipped, got)

	_, ok = ParseOrderStatus("returned")
	assert.False(t, ok)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))

	// No skipping ahead and no leaving terminal states.
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusProcessing))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	n := NewOrderNumber(now)

	assert.True(t, strings.HasPrefix(n, "ORD-1700000000000-"), "got %q", n)
	// Suffix is 8 uppercase hex chars.
	parts := strings.Split(n, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])

	// Two numbers generated at the same instant should differ.
	assert.NotEqual(t, n, NewOrderNumber(now))
}

func TestCommissionFor(t *testing.T) {
	assert.Equal(t, int64(100), CommissionFor(1000, 10))
	assert.Equal(t, int64(0), CommissionFor(1000, 0))
	// Rounded half away from zero: 2.5% of 999 = 24.975 -> 25.
	assert.Equal(t, int64(25), CommissionFor(999, 2.5))
}

func TestCreateOrderRequestValidate(t *testing.T) {
	req := CreateOrderRequest{
		CustomerName:    "A Shopper",
		CustomerEmail:   "shopper@example.com",
		ShippingAddress: "12 Garden Lane",
	}
	require.NoError(t, req.Validate())

	missing := req
	missing.ShippingAddress = "  "
	assert.Error(t, missing.Validate())
}
