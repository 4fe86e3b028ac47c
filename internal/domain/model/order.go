package model

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// OrderStatus tracks fulfillment progress for an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the order status is supported.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseOrderStatus normalizes a status string and reports whether it is supported.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// CanTransitionTo reports whether an order may move from s to next.
// Delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// PaymentStatus tracks the payment lifecycle for an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order is a purchase placed against a single nursery. Monetary amounts are
// stored in minor units; commission is snapshotted at creation time so later
// rate changes do not rewrite history.
type Order struct {
	ID               string        `json:"id"                          db:"id"`
	OrderNumber      string        `json:"order_number"                db:"order_number"`
	UserID           string        `json:"user_id"                     db:"user_id"`
	NurseryID        string        `json:"nursery_id"                  db:"nursery_id"`
	Status           OrderStatus   `json:"status"                      db:"status"`
	SubtotalMinor    int64         `json:"subtotal_minor"              db:"subtotal_minor"`
	TotalMinor       int64         `json:"total_minor"                 db:"total_minor"`
	CommissionMinor  int64         `json:"commission_minor"            db:"commission_minor"`
	CommissionRate   float64       `json:"commission_rate"             db:"commission_rate"`
	PaymentStatus    PaymentStatus `json:"payment_status"              db:"payment_status"`
	PaymentMethod    string        `json:"payment_method"              db:"payment_method"`
	StripeSessionID  *string       `json:"stripe_session_id,omitempty" db:"stripe_session_id"`
	ShippingAddress  string        `json:"shipping_address"            db:"shipping_address"`
	CustomerName     string        `json:"customer_name"               db:"customer_name"`
	CustomerEmail    string        `json:"customer_email"              db:"customer_email"`
	CustomerPhone    string        `json:"customer_phone"              db:"customer_phone"`
	Notes            string        `json:"notes"                       db:"notes"`
	CreatedAt        time.Time     `json:"created_at"                  db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"                  db:"updated_at"`
}

// OrderItem is a purchased line within an order. Product name, image, and
// price are snapshotted so catalog edits do not rewrite order history.
type OrderItem struct {
	ID            string  `json:"id"                      db:"id"`
	OrderID       string  `json:"order_id"                db:"order_id"`
	ProductID     string  `json:"product_id"              db:"product_id"`
	ProductName   string  `json:"product_name"            db:"product_name"`
	ProductImage  *string `json:"product_image,omitempty" db:"product_image"`
	PriceMinor    int64   `json:"price_minor"             db:"price_minor"`
	Quantity      int     `json:"quantity"                db:"quantity"`
	SubtotalMinor int64   `json:"subtotal_minor"          db:"subtotal_minor"`
}

// CreateOrderRequest carries the checkout form fields needed to place an
// order from the caller's cart.
type CreateOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	StripeSessionID string `json:"stripe_session_id,omitempty"`
}

// Validate validates CreateOrderRequest.
func (r *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return errors.New("customer_name is required and cannot be empty")
	}
	if strings.TrimSpace(r.CustomerEmail) == "" {
		return errors.New("customer_email is required and cannot be empty")
	}
	if strings.TrimSpace(r.ShippingAddress) == "" {
		return errors.New("shipping_address is required and cannot be empty")
	}
	return nil
}

// OrdersListOptions controls paging and filtering for order lists.
type OrdersListOptions struct {
	Limit     int
	Offset    int
	UserID    *string
	NurseryID *string
	Status    *OrderStatus
}

// SalesStats aggregates order counts and revenue, optionally scoped to one
// nursery. Revenue and commission cover paid orders only.
type SalesStats struct {
	TotalOrders     int64 `json:"total_orders"     db:"total_orders"`
	PaidOrders      int64 `json:"paid_orders"      db:"paid_orders"`
	PendingOrders   int64 `json:"pending_orders"   db:"pending_orders"`
	RevenueMinor    int64 `json:"revenue_minor"    db:"revenue_minor"`
	CommissionMinor int64 `json:"commission_minor" db:"commission_minor"`
}

// NewOrderNumber generates a human-readable order number of the form
// ORD-<unix-ms>-<random suffix>.
func NewOrderNumber(now time.Time) string {
	var b [4]byte
	// rand.Read on the default source never fails.
	_, _ = rand.Read(b[:])
	suffix := strings.ToUpper(hex.EncodeToString(b[:]))
	return "ORD-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
