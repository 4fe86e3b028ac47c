package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ConditionType is the SQL comparison operator used by a Condition.
type ConditionType string

const (
	Equal ConditionType = "="
	ILike ConditionType = "ILIKE"
)

// Condition is one WHERE predicate. Field names are sanitized with
// pgx.Identifier before being interpolated; values always travel as
// positional parameters.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

// WhereCond builds a single predicate condition.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions describes a paginated SELECT over a single table.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

// ListQueryOption mutates ListQueryOptions.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions creates options for the given table and applies opts.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{Table: table, Limit: -1, Offset: -1}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

// WithCondition appends a predicate.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, cond) }
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Negative values leave the clause off.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Negative values leave the clause off.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// BuildListQuery constructs a SQL query string and positional arguments from
// options. Identifiers are quoted with pgx.Identifier; the order direction is
// validated against ASC/DESC.
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT ")
	if len(options.Columns) == 0 {
		query.WriteString("*")
	} else {
		cols := make([]string, len(options.Columns))
		for i, c := range options.Columns {
			cols[i] = sanitizeIdentifier(c)
		}
		query.WriteString(strings.Join(cols, ", "))
	}
	query.WriteString(" FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	if len(options.Conditions) > 0 {
		preds := make([]string, 0, len(options.Conditions))
		for _, cond := range options.Conditions {
			if cond.Field == "" {
				continue
			}
			args = append(args, cond.Value)
			preds = append(preds, fmt.Sprintf("%s %s $%d",
				sanitizeIdentifier(cond.Field), cond.Type, len(args)))
		}
		if len(preds) > 0 {
			query.WriteString(" WHERE ")
			query.WriteString(strings.Join(preds, " AND "))
		}
	}

	if options.OrderBy != "" {
		query.WriteString(" ORDER BY ")
		query.WriteString(sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			query.WriteString(" " + dir)
		}
	}
	if options.Limit >= 0 {
		args = append(args, options.Limit)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if options.Offset >= 0 {
		args = append(args, options.Offset)
		query.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	return query.String(), args
}
