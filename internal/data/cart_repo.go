package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/data/pgxutil"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// CartRepo provides database operations for shopper carts. Each cart is the
// set of cart_items rows for one user; adding the same product again merges
// quantities via ON CONFLICT.
type CartRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCartRepo creates a new CartRepo with real time provider.
func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewCartRepoWithTimeProvider creates a new CartRepo with a custom time provider.
func NewCartRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CartRepo {
	return &CartRepo{DB: db, timeProvider: tp}
}

// Add inserts a product into the user's cart, merging quantity if the
// product is already present.
func (r *CartRepo) Add(
	ctx context.Context,
	userID string,
	req *model.AddCartItemRequest,
) (*model.CartItem, error) {
	if req == nil {
		return nil, errors.New("add cart item request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.CartItem
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT ON CONSTRAINT cart_items_user_product_key
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
			RETURNING id, user_id, product_id, quantity, created_at, updated_at`,
			userID, req.ProductID, req.Quantity, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CartItem])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// UpdateQuantity sets the absolute quantity for one of the user's cart items.
func (r *CartRepo) UpdateQuantity(
	ctx context.Context,
	userID, itemID string,
	req model.UpdateCartItemRequest,
) (*model.CartItem, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.CartItem
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE cart_items SET quantity = $1, updated_at = $2
			WHERE id = $3 AND user_id = $4
			RETURNING id, user_id, product_id, quantity, created_at, updated_at`,
			req.Quantity, r.timeProvider.Now().UTC(), itemID, userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CartItem])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Remove deletes one of the user's cart items.
func (r *CartRepo) Remove(ctx context.Context, userID, itemID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

// Clear empties the user's cart.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Lines returns the user's cart joined with current product rows, oldest first.
func (r *CartRepo) Lines(ctx context.Context, userID string) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, cartLinesQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		lines, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CartLine])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", apperrors.MapDBError(err))
	}
	return lines, nil
}

// LinesForUpdate loads the user's cart inside tx with the product rows locked
// (FOR UPDATE on products). Used by checkout so stock checks and decrements
// act on a consistent snapshot.
func LinesForUpdate(ctx context.Context, tx pgx.Tx, userID string) ([]model.CartLine, error) {
	rows, err := tx.Query(ctx, cartLinesQuery+` FOR UPDATE OF p`, userID)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	defer rows.Close()
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CartLine])
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return lines, nil
}

// RestoreCartTx reinserts checkout cart lines inside an existing transaction,
// merging quantities with anything the user added in the meantime.
func RestoreCartTx(ctx context.Context, tx pgx.Tx, userID string, lines []model.CartLine) error {
	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			ON CONFLICT ON CONSTRAINT cart_items_user_product_key
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
			userID, line.ProductID, line.Quantity,
		); err != nil {
			return apperrors.MapDBError(err)
		}
	}
	return nil
}

// ClearTx empties the user's cart inside an existing transaction.
func ClearTx(ctx context.Context, tx pgx.Tx, userID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

const cartLinesQuery = `
	SELECT ci.id, ci.product_id, p.name, p.price_minor, p.image_url,
	       ci.quantity, p.nursery_id, p.stock
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.user_id = $1
	ORDER BY ci.created_at`
