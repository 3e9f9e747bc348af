package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNoRows reports whether a QueryRow scan found nothing
func IsNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

// Many uses a custom scanner to map all rows into []T
// an empty result is a non nil empty slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
