package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/data/pgxutil"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

const orderColumns = `id, order_number, user_id, nursery_id, status, subtotal_minor, total_minor,
	commission_minor, commission_rate, payment_status, payment_method, stripe_session_id,
	shipping_address, customer_name, customer_email, customer_phone, notes, created_at, updated_at`

// OrderRepo provides database operations for orders and their line items.
// Order creation happens inside the checkout transaction via the Tx helpers.
type OrderRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOrderRepo creates a new OrderRepo with real time provider.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOrderRepoWithTimeProvider creates a new OrderRepo with a custom time provider.
func NewOrderRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: tp}
}

// InsertTx inserts an order row inside an existing transaction and returns it.
func InsertTx(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error) {
	rows, err := tx.Query(ctx, `
		INSERT INTO orders (
			order_number, user_id, nursery_id, status, subtotal_minor, total_minor,
			commission_minor, commission_rate, payment_status, payment_method,
			stripe_session_id, shipping_address, customer_name, customer_email,
			customer_phone, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
		RETURNING `+orderColumns,
		order.OrderNumber, order.UserID, order.NurseryID, order.Status,
		order.SubtotalMinor, order.TotalMinor, order.CommissionMinor, order.CommissionRate,
		order.PaymentStatus, order.PaymentMethod, order.StripeSessionID,
		order.ShippingAddress, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.Notes, order.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	defer rows.Close()
	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// InsertItemsTx inserts order line items inside an existing transaction.
func InsertItemsTx(ctx context.Context, tx pgx.Tx, orderID string, items []model.OrderItem) error {
	for i := range items {
		item := &items[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, product_image,
				price_minor, quantity, subtotal_minor
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			orderID, item.ProductID, item.ProductName, item.ProductImage,
			item.PriceMinor, item.Quantity, item.SubtotalMinor,
		); err != nil {
			return apperrors.MapDBError(err)
		}
	}
	return nil
}

// DeleteOrderTx removes an order and its line items inside an existing
// transaction. Used to compensate a checkout whose payment session failed.
func DeleteOrderTx(ctx context.Context, tx pgx.Tx, orderID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return apperrors.MapDBError(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// RestoreStockTx adds quantity back onto a product inside an existing
// transaction, reversing DecrementStockTx.
func RestoreStockTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	if _, err := tx.Exec(ctx, `
		UPDATE products SET stock = stock + $1, updated_at = now()
		WHERE id = $2`,
		quantity, productID,
	); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// DecrementStockTx reduces product stock inside an existing transaction.
// The WHERE guard refuses to oversell even if the caller's stock check is stale.
func DecrementStockTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	ct, err := tx.Exec(ctx, `
		UPDATE products SET stock = stock - $1, updated_at = now()
		WHERE id = $2 AND stock >= $1`,
		quantity, productID,
	)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.Conflict("insufficient stock for product")
	}
	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return r.getByQuery(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// ListByStripeSession retrieves the orders tied to a Stripe checkout session.
// One checkout can span several nurseries, so several orders may share a session.
func (r *OrderRepo) ListByStripeSession(ctx context.Context, sessionID string) ([]*model.Order, error) {
	return r.listByQuery(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE stripe_session_id = $1 ORDER BY created_at`, sessionID)
}

// SalesStats aggregates order counts and paid revenue, scoped to one
// nursery when nurseryID is non-nil.
func (r *OrderRepo) SalesStats(ctx context.Context, nurseryID *string) (*model.SalesStats, error) {
	var stats *model.SalesStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT
				COUNT(*)                                                                 AS total_orders,
				COUNT(*) FILTER (WHERE payment_status = 'paid')                          AS paid_orders,
				COUNT(*) FILTER (WHERE status = 'pending')                               AS pending_orders,
				COALESCE(SUM(total_minor)      FILTER (WHERE payment_status = 'paid'), 0) AS revenue_minor,
				COALESCE(SUM(commission_minor) FILTER (WHERE payment_status = 'paid'), 0) AS commission_minor
			FROM orders
			WHERE $1::uuid IS NULL OR nursery_id = $1`,
			nurseryID)
		if err != nil {
			return apperrors.MapDBError(err)
		}
		defer rows.Close()
		out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SalesStats])
		if err != nil {
			return apperrors.MapDBError(err)
		}
		stats = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// AttachStripeSession records the checkout session ID on an order after the
// hosted payment page has been created.
func (r *OrderRepo) AttachStripeSession(ctx context.Context, orderID, sessionID string) error {
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE orders SET stripe_session_id = $1, updated_at = $2 WHERE id = $3`,
			sessionID, r.timeProvider.Now().UTC(), orderID)
		if err != nil {
			return apperrors.MapDBError(err)
		}
		if ct.RowsAffected() == 0 {
			return apperrors.NotFound("order not found")
		}
		return nil
	})
}

// Items retrieves the line items for an order.
func (r *OrderRepo) Items(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, order_id, product_id, product_name, product_image,
			       price_minor, quantity, subtotal_minor
			FROM order_items WHERE order_id = $1`, orderID)
		if err != nil {
			return err
		}
		defer rows.Close()
		items, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.OrderItem])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", apperrors.MapDBError(err))
	}
	return items, nil
}

// List retrieves orders with filters and pagination, newest first.
func (r *OrderRepo) List(
	ctx context.Context,
	opts model.OrdersListOptions,
) ([]*model.Order, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + orderColumns + ` FROM orders`
	var preds []string
	var args []any
	addPred := func(col string, val any) {
		args = append(args, val)
		preds = append(preds, col+" = $"+strconv.Itoa(len(args)))
	}
	if opts.UserID != nil && *opts.UserID != "" {
		addPred("user_id", *opts.UserID)
	}
	if opts.NurseryID != nil && *opts.NurseryID != "" {
		addPred("nursery_id", *opts.NurseryID)
	}
	if opts.Status != nil && opts.Status.Valid() {
		addPred("status", *opts.Status)
	}
	if len(preds) > 0 {
		query += ` WHERE ` + strings.Join(preds, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Order
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Order])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Order, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus sets the fulfillment status of an order.
func (r *OrderRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.OrderStatus,
) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status",
			"status must be one of: pending, processing, shipped, delivered, cancelled")
	}
	return r.getByQuery(ctx, `
		UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3
		RETURNING `+orderColumns,
		status, r.timeProvider.Now().UTC(), id)
}

// MarkPaid sets payment_status for every order tied to a Stripe checkout
// session and returns the updated orders.
func (r *OrderRepo) MarkPaid(ctx context.Context, stripeSessionID string) ([]*model.Order, error) {
	return r.listByQuery(ctx, `
		UPDATE orders SET payment_status = $1, updated_at = $2
		WHERE stripe_session_id = $3
		RETURNING `+orderColumns,
		model.PaymentStatusPaid, r.timeProvider.Now().UTC(), stripeSessionID)
}

func (r *OrderRepo) listByQuery(ctx context.Context, q string, args ...any) ([]*model.Order, error) {
	var rowsOut []model.Order
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Order])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	res := make([]*model.Order, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *OrderRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.Order, error) {
	var order model.Order
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		order, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &order, nil
}
