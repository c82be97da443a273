// Package pipeline orchestrates one full ETL run: extract, transform into
// a star schema, and persist to both sinks.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/logging"
)

// Source yields one raw input snapshot.
type Source interface {
	Read(ctx context.Context) ([]etl.RawRecord, error)
}

// FileSink persists the finished tables as flat files.
type FileSink interface {
	WriteTables(ctx context.Context, schema *etl.StarSchema) error
}

// Warehouse provisions the relational schema and bulk-loads the tables.
type Warehouse interface {
	Provision(ctx context.Context) error
	Load(ctx context.Context, schema *etl.StarSchema) error
}

// Pipeline runs the stages in order. The transformation stages are
// sequential (each consumes the previous stage's full output); the two
// sinks consume the same finished tables and run concurrently. Both must
// succeed for the run to succeed.
type Pipeline struct {
	source Source
	files  FileSink
	wh     Warehouse
}

// New creates a pipeline over the given collaborators.
func New(source Source, files FileSink, wh Warehouse) *Pipeline {
	return &Pipeline{source: source, files: files, wh: wh}
}

// Result summarizes a completed run.
type Result struct {
	InputRows int
	Dates     int
	Products  int
	Customers int
	FactRows  int
}

// Run executes one full pass over the input snapshot. The first error
// aborts the run; there are no partial successes and no retries here —
// re-invocation is the caller's concern.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	raw, err := p.source.Read(ctx)
	if err != nil {
		return nil, err
	}

	records, err := etl.Normalize(raw)
	if err != nil {
		return nil, err
	}

	schema, err := etl.Build(records)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("records", len(records)).
		Int("dim_date", len(schema.Dates)).
		Int("dim_product", len(schema.Products)).
		Int("dim_customer", len(schema.Customers)).
		Msg("Star schema built")

	// The schema must exist before the fact insert; provisioning is
	// sequenced inside the warehouse branch, not with the file sink.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.files.WriteTables(gctx, schema)
	})
	g.Go(func() error {
		if err := p.wh.Provision(gctx); err != nil {
			return err
		}
		return p.wh.Load(gctx, schema)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		InputRows: len(records),
		Dates:     len(schema.Dates),
		Products:  len(schema.Products),
		Customers: len(schema.Customers),
		FactRows:  len(schema.Facts),
	}, nil
}
