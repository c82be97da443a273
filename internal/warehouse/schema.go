// Package warehouse provisions and loads the star schema in PostgreSQL.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/logging"
)

// Provision ensures the four warehouse tables exist with their primary and
// foreign key constraints. All DDL runs in one transaction: safe to invoke
// repeatedly, and a failure leaves the schema untouched. The connection is
// released on every exit path.
func Provision(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return etl.SchemaError("acquire connection", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return etl.SchemaError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	for _, spec := range etl.Specs() {
		if _, err := tx.Exec(ctx, spec.CreateSQL); err != nil {
			return etl.SchemaError("create "+spec.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return etl.SchemaError("commit", err)
	}

	logging.Info().Msg("Warehouse schema ready")
	return nil
}
