package repo

import (
	"context"
	_ "embed"

	"parliametrics/internal/modkit/repokit"
	perr "parliametrics/internal/platform/errors"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the archive tables when they are missing
func Migrate(ctx context.Context, tx repokit.TxRunner) error {
	return tx.Tx(ctx, func(q repokit.Queryer) error {
		if _, err := q.Exec(ctx, schemaSQL); err != nil {
			return perr.FromPostgres(err, "migrate archive schema")
		}
		return nil
	})
}
