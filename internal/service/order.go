package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/core"
	"github.com/plantflix/marketplace/internal/data"
	"github.com/plantflix/marketplace/internal/data/pgxutil"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/ports"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	DB         *sql.DB
	Orders     core.OrderRepository
	Settings   core.SettingsRepository
	Nurseries  core.NurseryRepository
	Payments   ports.PaymentGateway
	SuccessURL string
	CancelURL  string
	Now        func() time.Time
	Logger     *slog.Logger
}

// OrderService places orders from carts and manages their lifecycle.
type OrderService struct {
	db         *sql.DB
	orders     core.OrderRepository
	settings   core.SettingsRepository
	nurseries  core.NurseryRepository
	payments   ports.PaymentGateway
	successURL string
	cancelURL  string
	now        func() time.Time
	logger     *slog.Logger

	// Transactional halves of checkout; swapped for fakes in tests.
	placeOrders  func(ctx context.Context, sess domainauth.Session, req *model.CreateOrderRequest, commissionRate float64) ([]*model.Order, []model.CartLine, error)
	undoCheckout func(ctx context.Context, userID string, orders []*model.Order, lines []model.CartLine) error
}

// NewOrderService constructs a new OrderService.
func NewOrderService(opts OrderServiceOptions) *OrderService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &OrderService{
		db:         opts.DB,
		orders:     opts.Orders,
		settings:   opts.Settings,
		nurseries:  opts.Nurseries,
		payments:   opts.Payments,
		successURL: opts.SuccessURL,
		cancelURL:  opts.CancelURL,
		now:        now,
		logger:     logger,
	}
	s.placeOrders = s.placeOrdersTx
	s.undoCheckout = s.undoCheckoutTx
	return s
}

// CheckoutResult is the outcome of placing an order: the created orders (one
// per nursery represented in the cart) and the hosted payment page URL.
type CheckoutResult struct {
	Orders     []*model.Order `json:"orders"`
	PaymentURL string         `json:"payment_url"`
}

// Checkout converts the caller's cart into orders inside one transaction:
// cart lines are read with the product rows locked, stock is checked and
// decremented, order rows are written, and the cart is cleared. Commission is
// snapshotted from the current settings so later rate changes do not rewrite
// history. The Stripe session is created after commit and attached to the
// orders; if it cannot be opened, the checkout is compensated — orders
// removed, stock restored, cart put back — so the shopper can simply retry.
// Payment confirmation arrives via webhook.
func (s *OrderService) Checkout(
	ctx context.Context,
	sess domainauth.Session,
	req *model.CreateOrderRequest,
) (*CheckoutResult, error) {
	if req == nil {
		return nil, apperrors.Validation("checkout request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load commission settings: %w", err)
	}

	created, lines, err := s.placeOrders(ctx, sess, req, settings.CommissionRate)
	if err != nil {
		return nil, err
	}

	paymentURL, err := s.openPaymentSession(ctx, sess, created, lines)
	if err != nil {
		if undoErr := s.undoCheckout(ctx, sess.UserID, created, lines); undoErr != nil {
			s.logger.ErrorContext(ctx, "checkout compensation failed",
				"user_id", sess.UserID, "orders", len(created), "error", undoErr)
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal,
				"payment session failed and order cleanup is incomplete")
		}
		s.logger.WarnContext(ctx, "checkout rolled back after payment session failure",
			"user_id", sess.UserID, "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout completed",
		"user_id", sess.UserID, "orders", len(created))
	return &CheckoutResult{Orders: created, PaymentURL: paymentURL}, nil
}

// placeOrdersTx is the destructive half of checkout: one transaction that
// locks the cart's product rows, verifies stock, writes the orders, and
// clears the cart.
func (s *OrderService) placeOrdersTx(
	ctx context.Context,
	sess domainauth.Session,
	req *model.CreateOrderRequest,
	commissionRate float64,
) ([]*model.Order, []model.CartLine, error) {
	var created []*model.Order
	var lines []model.CartLine
	txErr := pgxutil.WithPgxTx(ctx, s.db, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var err error
			lines, err = data.LinesForUpdate(ctx, tx, sess.UserID)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return apperrors.Validation("cart is empty")
			}

			for _, line := range lines {
				if line.Stock < line.Quantity {
					return apperrors.Conflict(
						fmt.Sprintf("insufficient stock for %q", line.Name))
				}
			}

			created, err = s.writeOrders(ctx, tx, sess, req, lines, commissionRate)
			if err != nil {
				return err
			}
			return data.ClearTx(ctx, tx, sess.UserID)
		},
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	return created, lines, nil
}

// undoCheckoutTx compensates a committed checkout whose payment session could
// not be opened: the created orders and their items are removed, decremented
// stock is added back, and the cart lines are reinserted.
func (s *OrderService) undoCheckoutTx(
	ctx context.Context,
	userID string,
	orders []*model.Order,
	lines []model.CartLine,
) error {
	return pgxutil.WithPgxTx(ctx, s.db, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			for _, order := range orders {
				if err := data.DeleteOrderTx(ctx, tx, order.ID); err != nil {
					return err
				}
			}
			for _, line := range lines {
				if err := data.RestoreStockTx(ctx, tx, line.ProductID, line.Quantity); err != nil {
					return err
				}
			}
			return data.RestoreCartTx(ctx, tx, userID, lines)
		},
	})
}

// writeOrders groups cart lines by nursery and inserts one order per group,
// decrementing stock as it goes.
func (s *OrderService) writeOrders(
	ctx context.Context,
	tx pgx.Tx,
	sess domainauth.Session,
	req *model.CreateOrderRequest,
	lines []model.CartLine,
	commissionRate float64,
) ([]*model.Order, error) {
	byNursery := make(map[string][]model.CartLine)
	var nurseryOrder []string
	for _, line := range lines {
		if _, seen := byNursery[line.NurseryID]; !seen {
			nurseryOrder = append(nurseryOrder, line.NurseryID)
		}
		byNursery[line.NurseryID] = append(byNursery[line.NurseryID], line)
	}

	now := s.now().UTC()
	created := make([]*model.Order, 0, len(nurseryOrder))
	for _, nurseryID := range nurseryOrder {
		group := byNursery[nurseryID]

		var subtotal int64
		items := make([]model.OrderItem, 0, len(group))
		for _, line := range group {
			subtotal += line.Subtotal()
			items = append(items, model.OrderItem{
				ProductID:     line.ProductID,
				ProductName:   line.Name,
				ProductImage:  line.ImageURL,
				PriceMinor:    line.PriceMinor,
				Quantity:      line.Quantity,
				SubtotalMinor: line.Subtotal(),
			})
		}

		order := &model.Order{
			OrderNumber:     model.NewOrderNumber(now),
			UserID:          sess.UserID,
			NurseryID:       nurseryID,
			Status:          model.OrderStatusPending,
			SubtotalMinor:   subtotal,
			TotalMinor:      subtotal,
			CommissionMinor: model.CommissionFor(subtotal, commissionRate),
			CommissionRate:  commissionRate,
			PaymentStatus:   model.PaymentStatusPending,
			PaymentMethod:   "stripe",
			ShippingAddress: req.ShippingAddress,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			CreatedAt:       now,
		}

		inserted, err := data.InsertTx(ctx, tx, order)
		if err != nil {
			return nil, err
		}
		if err := data.InsertItemsTx(ctx, tx, inserted.ID, items); err != nil {
			return nil, err
		}
		for _, line := range group {
			if err := data.DecrementStockTx(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return nil, err
			}
		}
		created = append(created, inserted)
	}
	return created, nil
}

// openPaymentSession creates the hosted checkout page for the whole cart and
// records the session ID on each created order.
func (s *OrderService) openPaymentSession(
	ctx context.Context,
	sess domainauth.Session,
	orders []*model.Order,
	lines []model.CartLine,
) (string, error) {
	checkoutLines := make([]ports.CheckoutLine, 0, len(lines))
	for _, line := range lines {
		cl := ports.CheckoutLine{
			Name:            line.Name,
			UnitAmountMinor: line.PriceMinor,
			Quantity:        int64(line.Quantity),
		}
		if line.ImageURL != nil {
			cl.ImageURL = *line.ImageURL
		}
		checkoutLines = append(checkoutLines, cl)
	}

	session, err := s.payments.CreateCheckoutSession(ctx, ports.CheckoutSessionInput{
		OrderID:    orders[0].ID,
		UserID:     sess.UserID,
		Email:      sess.Email,
		Lines:      checkoutLines,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("create payment session: %w", err)
	}

	for _, order := range orders {
		if attachErr := s.orders.AttachStripeSession(ctx, order.ID, session.ID); attachErr != nil {
			return "", attachErr
		}
		order.StripeSessionID = &session.ID
	}
	return session.URL, nil
}

// HandlePaymentWebhook verifies an incoming payment notification and marks
// the matching orders paid. Event types the marketplace does not act on are
// acknowledged without side effects.
func (s *OrderService) HandlePaymentWebhook(
	ctx context.Context,
	payload []byte,
	signature string,
) error {
	sessionID, err := s.payments.VerifyWebhook(payload, signature)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "webhook verification failed")
	}
	if sessionID == "" {
		return nil
	}

	orders, err := s.orders.MarkPaid(ctx, sessionID)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "payment confirmed",
		"stripe_session_id", sessionID, "orders", len(orders))
	return nil
}

// Get returns one order with its items, restricted to the buyer, the owning
// nursery admin, or a super admin.
func (s *OrderService) Get(
	ctx context.Context,
	sess domainauth.Session,
	orderID string,
) (*model.Order, []model.OrderItem, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorizeOrderRead(ctx, sess, order); err != nil {
		return nil, nil, err
	}
	items, err := s.orders.Items(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// List returns orders scoped to the caller: shoppers see their own, nursery
// admins their nursery's, super admins everything.
func (s *OrderService) List(
	ctx context.Context,
	sess domainauth.Session,
	opts model.OrdersListOptions,
) ([]*model.Order, error) {
	switch {
	case sess.IsSuperAdmin():
		// no scoping
	case sess.IsNurseryAdmin():
		nursery, err := s.nurseries.GetByOwner(ctx, sess.UserID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return []*model.Order{}, nil
			}
			return nil, err
		}
		opts.NurseryID = &nursery.ID
		opts.UserID = nil
	default:
		opts.UserID = &sess.UserID
		opts.NurseryID = nil
	}
	return s.orders.List(ctx, opts)
}

// UpdateStatus moves an order through its fulfillment lifecycle, enforcing
// the legal transitions. Nursery admins may only update their own orders.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	sess domainauth.Session,
	orderID string,
	next model.OrderStatus,
) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !sess.IsSuperAdmin() {
		if !sess.IsNurseryAdmin() {
			return nil, apperrors.Forbidden("only nursery admins can update order status")
		}
		nursery, nerr := s.nurseries.GetByOwner(ctx, sess.UserID)
		if nerr != nil {
			if apperrors.IsNotFound(nerr) {
				return nil, apperrors.Forbidden("no nursery registered for this account")
			}
			return nil, nerr
		}
		if order.NurseryID != nursery.ID {
			return nil, apperrors.Forbidden("order belongs to a different nursery")
		}
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}
	return s.orders.UpdateStatus(ctx, orderID, next)
}

// Stats returns sales aggregates: marketplace-wide for super admins,
// scoped to the caller's nursery for nursery admins.
func (s *OrderService) Stats(ctx context.Context, sess domainauth.Session) (*model.SalesStats, error) {
	switch {
	case sess.IsSuperAdmin():
		return s.orders.SalesStats(ctx, nil)
	case sess.IsNurseryAdmin():
		nursery, err := s.nurseries.GetByOwner(ctx, sess.UserID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return &model.SalesStats{}, nil
			}
			return nil, err
		}
		return s.orders.SalesStats(ctx, &nursery.ID)
	default:
		return nil, apperrors.Forbidden("stats are limited to nursery and super admins")
	}
}

func (s *OrderService) authorizeOrderRead(
	ctx context.Context,
	sess domainauth.Session,
	order *model.Order,
) error {
	if sess.IsSuperAdmin() || order.UserID == sess.UserID {
		return nil
	}
	if sess.IsNurseryAdmin() {
		nursery, err := s.nurseries.GetByOwner(ctx, sess.UserID)
		if err == nil && nursery.ID == order.NurseryID {
			return nil
		}
	}
	return apperrors.Forbidden("not allowed to view this order")
}
