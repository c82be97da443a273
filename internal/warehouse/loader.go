package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/logging"
)

// DefaultBatchSize is the number of rows queued per insert batch.
const DefaultBatchSize = 1000

// Store couples schema provisioning and bulk loading against one pool.
type Store struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewStore creates a warehouse store. batchSize <= 0 selects the default.
func NewStore(pool *pgxpool.Pool, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Store{pool: pool, batchSize: batchSize}
}

// Provision ensures the warehouse schema exists.
func (s *Store) Provision(ctx context.Context) error {
	return Provision(ctx, s.pool)
}

// Load inserts all tables of one run inside a single transaction,
// dimensions strictly before facts. Dimension inserts are conflict-tolerant
// (a re-run is a no-op per row); fact inserts are plain appends, so loading
// the same snapshot twice duplicates fact rows. Any failure rolls the whole
// run back and the connection is released on every exit path.
func (s *Store) Load(ctx context.Context, schema *etl.StarSchema) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return etl.LoadError("acquire connection", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return etl.LoadError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range schema.Tables() {
		if err := s.loadTable(ctx, tx, table); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return etl.LoadError("commit", err)
	}

	logging.Info().
		Int("dim_date", len(schema.Dates)).
		Int("dim_product", len(schema.Products)).
		Int("dim_customer", len(schema.Customers)).
		Int("fact_sales", len(schema.Facts)).
		Msg("Load committed")

	return nil
}

func (s *Store) loadTable(ctx context.Context, tx pgx.Tx, table etl.Table) error {
	sql := table.InsertSQL()

	for start := 0; start < len(table.Rows); start += s.batchSize {
		end := min(start+s.batchSize, len(table.Rows))

		batch := &pgx.Batch{}
		for _, row := range table.Rows[start:end] {
			batch.Queue(sql, row...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return etl.LoadError("insert into "+table.Name, err)
		}
	}

	logging.Debug().
		Str("table", table.Name).
		Int("rows", len(table.Rows)).
		Msg("Table loaded")

	return nil
}
