package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/data/pgxutil"
)

const userColumns = `id, name, email, phone, address, role, password_hash, created_at, updated_at`

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider.
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user account. The password must already be hashed.
func (r *UserRepo) Create(
	ctx context.Context,
	req *model.SignupRequest,
	passwordHash string,
) (*model.User, error) {
	if req == nil {
		return nil, errors.New("signup request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (name, email, phone, role, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+userColumns,
			strings.TrimSpace(req.Name),
			normalizeEmail(req.Email),
			strings.TrimSpace(req.Phone),
			domainauth.RoleUser,
			passwordHash,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
}

// List retrieves users with pagination and an optional name/email search.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateProfile updates a user's own profile fields.
func (r *UserRepo) UpdateProfile(
	ctx context.Context,
	id string,
	req model.UpdateProfileRequest,
) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Phone))
	}
	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Address))
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + userColumns

	return r.returningOne(ctx, query, args...)
}

// UpdateRole sets the role for a user account.
func (r *UserRepo) UpdateRole(
	ctx context.Context,
	id string,
	role domainauth.Role,
) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", "role must be one of: user, nurseryadmin, superadmin")
	}
	return r.returningOne(ctx, `
		UPDATE users SET role = $1, updated_at = $2 WHERE id = $3
		RETURNING `+userColumns,
		role, r.timeProvider.Now().UTC(), id)
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
			passwordHash, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return apperrors.MapDBError(err)
		}
		if ct.RowsAffected() == 0 {
			return apperrors.NotFound("user not found")
		}
		return nil
	})
}

// Delete removes a user account by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

func (r *UserRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &user, nil
}

func (r *UserRepo) returningOne(ctx context.Context, q string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &user, nil
}

// normalizeEmail lowercases and trims an address so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
