package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/data/pgxutil"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

const contactColumns = `id, name, email, subject, message, status, created_at`

// ContactRepo provides database operations for contact-form submissions.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewContactRepo creates a new ContactRepo with real time provider.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewContactRepoWithTimeProvider creates a new ContactRepo with a custom time provider.
func NewContactRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: tp}
}

// Create inserts a contact submission from the public form.
func (r *ContactRepo) Create(
	ctx context.Context,
	req *model.CreateContactRequest,
) (*model.ContactSubmission, error) {
	if req == nil {
		return nil, errors.New("create contact request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.ContactSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO contact_submissions (name, email, subject, message, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+contactColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Email),
			strings.TrimSpace(req.Subject),
			req.Message,
			model.ContactStatusNew,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactSubmission])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves contact submissions with pagination, newest first.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]*model.ContactSubmission, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	var rowsOut []model.ContactSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+contactColumns+` FROM contact_submissions
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ContactSubmission])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.ContactSubmission, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus sets the triage status of a submission.
func (r *ContactRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ContactStatus,
) (*model.ContactSubmission, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "status must be one of: new, read, resolved")
	}

	var out model.ContactSubmission
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE contact_submissions SET status = $1 WHERE id = $2
			RETURNING `+contactColumns,
			status, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactSubmission])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
