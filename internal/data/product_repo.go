package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/plantflix/marketplace/internal/data/database"
	"github.com/plantflix/marketplace/internal/data/pgxutil"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// ProductRepo provides database operations for the plant catalog.
type ProductRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProductRepo creates a new ProductRepo with real time provider.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProductRepoWithTimeProvider creates a new ProductRepo with a custom time provider.
func NewProductRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProductRepo {
	return &ProductRepo{DB: db, timeProvider: tp}
}

// Create inserts a new product.
func (r *ProductRepo) Create(
	ctx context.Context,
	req *model.CreateProductRequest,
) (*model.Product, error) {
	if req == nil {
		return nil, errors.New("create product request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	now := r.timeProvider.Now().UTC()
	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO products (
				nursery_id, name, description, category, price_minor, stock, is_available,
				image_url, care_instructions, climate_zone, season, sku, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
			RETURNING `+productColumnList,
			strings.TrimSpace(req.NurseryID),
			strings.TrimSpace(req.Name),
			req.Description,
			strings.TrimSpace(req.Category),
			req.PriceMinor,
			req.Stock,
			available,
			req.ImageURL,
			req.CareInstructions,
			req.ClimateZone,
			req.Season,
			strings.TrimSpace(req.SKU),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+productColumnList+` FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		product, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &product, nil
}

// List retrieves products with filters and pagination via the query builder.
func (r *ProductRepo) List(
	ctx context.Context,
	opts model.ProductsListOptions,
) ([]*model.Product, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(productColumns()...),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Category != nil && strings.TrimSpace(*opts.Category) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("category", database.Equal, strings.TrimSpace(*opts.Category)),
		))
	}
	if opts.NurseryID != nil && strings.TrimSpace(*opts.NurseryID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("nursery_id", database.Equal, strings.TrimSpace(*opts.NurseryID)),
		))
	}
	if opts.OnlyAvailable {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("is_available", database.Equal, true),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("products", queryOpts...))

	var rowsOut []model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Product, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a product.
func (r *ProductRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateProductRequest,
) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 12)
	args := make([]any, 0, 13)
	nextIdx := func() int { return len(args) + 1 }

	addSet := func(col string, val any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, nextIdx()))
		args = append(args, val)
	}

	if req.Name != nil {
		addSet("name", strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Category != nil {
		addSet("category", strings.TrimSpace(*req.Category))
	}
	if req.PriceMinor != nil {
		addSet("price_minor", *req.PriceMinor)
	}
	if req.Stock != nil {
		addSet("stock", *req.Stock)
	}
	if req.IsAvailable != nil {
		addSet("is_available", *req.IsAvailable)
	}
	if req.ImageURL != nil {
		if strings.TrimSpace(*req.ImageURL) == "" {
			setParts = append(setParts, "image_url = NULL")
		} else {
			addSet("image_url", *req.ImageURL)
		}
	}
	if req.CareInstructions != nil {
		addSet("care_instructions", *req.CareInstructions)
	}
	if req.ClimateZone != nil {
		addSet("climate_zone", *req.ClimateZone)
	}
	if req.Season != nil {
		addSet("season", *req.Season)
	}
	if req.SKU != nil {
		addSet("sku", strings.TrimSpace(*req.SKU))
	}
	addSet("updated_at", r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE products SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + productColumnList

	var out model.Product
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a product by ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

const productColumnList = `id, nursery_id, name, description, category, price_minor, stock, is_available,
	image_url, care_instructions, climate_zone, season, sku, created_at, updated_at`

func productColumns() []string {
	return []string{
		"id", "nursery_id", "name", "description", "category", "price_minor",
		"stock", "is_available", "image_url", "care_instructions",
		"climate_zone", "season", "sku", "created_at", "updated_at",
	}
}
