package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/data/pgxutil"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

const nurseryColumns = `id, owner_id, name, description, address, phone, status, created_at, updated_at`

// NurseryRepo provides database operations for nursery storefronts.
type NurseryRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNurseryRepo creates a new NurseryRepo with real time provider.
func NewNurseryRepo(db *sql.DB) *NurseryRepo {
	return &NurseryRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNurseryRepoWithTimeProvider creates a new NurseryRepo with a custom time provider.
func NewNurseryRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NurseryRepo {
	return &NurseryRepo{DB: db, timeProvider: tp}
}

// Create inserts a new nursery for the given owner. New nurseries start in
// pending status until a super admin approves them.
func (r *NurseryRepo) Create(
	ctx context.Context,
	ownerID string,
	req *model.CreateNurseryRequest,
) (*model.Nursery, error) {
	if req == nil {
		return nil, errors.New("create nursery request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Nursery
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO nurseries (owner_id, name, description, address, phone, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+nurseryColumns,
			ownerID,
			strings.TrimSpace(req.Name),
			req.Description,
			strings.TrimSpace(req.Address),
			strings.TrimSpace(req.Phone),
			model.NurseryStatusPending,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Nursery])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a nursery by ID.
func (r *NurseryRepo) GetByID(ctx context.Context, id string) (*model.Nursery, error) {
	return r.getByQuery(ctx, `SELECT `+nurseryColumns+` FROM nurseries WHERE id = $1`, id)
}

// GetByOwner retrieves the nursery owned by the given user, if any.
func (r *NurseryRepo) GetByOwner(ctx context.Context, ownerID string) (*model.Nursery, error) {
	return r.getByQuery(ctx, `SELECT `+nurseryColumns+` FROM nurseries WHERE owner_id = $1`, ownerID)
}

// List retrieves nurseries with pagination. When onlyApproved is set, pending
// and disabled storefronts are filtered out (the public directory view).
func (r *NurseryRepo) List(
	ctx context.Context,
	limit, offset int,
	onlyApproved bool,
) ([]*model.Nursery, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	query := `SELECT ` + nurseryColumns + ` FROM nurseries`
	args := []any{}
	if onlyApproved {
		query += ` WHERE status = $1`
		args = append(args, model.NurseryStatusApproved)
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Nursery
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Nursery])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list nurseries: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Nursery, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a nursery.
func (r *NurseryRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateNurseryRequest,
) (*model.Nursery, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Address))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Phone))
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE nurseries SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + nurseryColumns

	return r.getByQuery(ctx, query, args...)
}

// Delete removes a nursery by ID.
func (r *NurseryRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM nurseries WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete nursery: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

func (r *NurseryRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.Nursery, error) {
	var nursery model.Nursery
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		nursery, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Nursery])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &nursery, nil
}
