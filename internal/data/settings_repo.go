package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/data/pgxutil"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// SettingsRepo provides access to the singleton commission settings row.
type SettingsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingsRepo creates a new SettingsRepo with real time provider.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSettingsRepoWithTimeProvider creates a new SettingsRepo with a custom time provider.
func NewSettingsRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: tp}
}

// Get returns the commission settings. When no row has been persisted yet it
// returns defaults rather than an error so checkout never blocks on setup.
func (r *SettingsRepo) Get(ctx context.Context) (*model.CommissionSettings, error) {
	var out model.CommissionSettings
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, commission_rate, updated_by, updated_at
			FROM commission_settings
			ORDER BY updated_at DESC LIMIT 1`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CommissionSettings])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.CommissionSettings{CommissionRate: model.DefaultCommissionRate}, nil
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update replaces the commission rate, recording who changed it. The table
// holds a single logical row; an upsert keeps it that way.
func (r *SettingsRepo) Update(
	ctx context.Context,
	req model.UpdateCommissionRequest,
	updatedBy string,
) (*model.CommissionSettings, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.CommissionSettings
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		// Keep the table to one row: update in place, insert on first use.
		ct, err := conn.Exec(ctx, `
			UPDATE commission_settings SET commission_rate = $1, updated_by = $2, updated_at = $3`,
			req.CommissionRate, updatedBy, now)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			if _, err := conn.Exec(ctx, `
				INSERT INTO commission_settings (commission_rate, updated_by, updated_at)
				VALUES ($1, $2, $3)`,
				req.CommissionRate, updatedBy, now); err != nil {
				return err
			}
		}
		rows, err := conn.Query(ctx, `
			SELECT id, commission_rate, updated_by, updated_at
			FROM commission_settings
			ORDER BY updated_at DESC LIMIT 1`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CommissionSettings])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
