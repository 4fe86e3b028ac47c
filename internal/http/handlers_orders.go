package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// OrderHandlers provides HTTP handlers for checkout and order management.
type OrderHandlers struct {
	Svc *service.OrderService
}

// Checkout handles POST /api/orders/checkout: the caller's cart becomes one
// order per nursery, all paid through a single hosted payment session.
func (h *OrderHandlers) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.CreateOrderRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	result, err := h.Svc.Checkout(r.Context(), sess, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

// List handles GET /api/orders, scoped server-side to the caller's role.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	limit, offset := ParseLimitOffset(r, DefaultListLimit, MaxListLimit)
	opts := model.OrdersListOptions{Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseOrderStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation",
				Err:     errors.New("unknown order status"),
			})
			return
		}
		opts.Status = &status
	}

	orders, err := h.Svc.List(r.Context(), sess, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

// orderDetail is an order together with its line items.
type orderDetail struct {
	Order *model.Order      `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	order, items, err := h.Svc.Get(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, orderDetail{Order: order, Items: items})
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (h *OrderHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req struct {
		Status string `json:"status"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     errors.New("unknown order status"),
			Field:   "status",
		})
		return
	}

	order, err := h.Svc.UpdateStatus(r.Context(), sess, r.PathValue("id"), status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// PaymentWebhookService verifies and applies payment notifications.
type PaymentWebhookService interface {
	HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) error
}

// maxWebhookBytes caps webhook payload reads; Stripe events are small.
const maxWebhookBytes = 1 << 20

// WebhookHandlers receives payment provider callbacks. The route is
// unauthenticated; the signature header is the authentication.
type WebhookHandlers struct {
	Orders PaymentWebhookService
	Logger *slog.Logger
}

func (h *WebhookHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Stripe handles POST /webhooks/stripe.
func (h *WebhookHandlers) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	if err := h.Orders.HandlePaymentWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.logger().WarnContext(r.Context(), "webhook rejected", "error", err)
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
