// Package sink persists finished star schema tables as CSV objects.
package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/logging"
	"github.com/starload/starload/internal/storage"
)

// Writer writes the four result tables to the object store under a
// configured prefix, one CSV per table, columns in descriptor order.
type Writer struct {
	store  storage.ObjectStore
	prefix string
}

// NewWriter creates a CSV table writer.
func NewWriter(store storage.ObjectStore, prefix string) *Writer {
	return &Writer{store: store, prefix: prefix}
}

// WriteTables persists all tables of the schema. The first failed table
// fails the whole write.
func (w *Writer) WriteTables(ctx context.Context, schema *etl.StarSchema) error {
	for _, table := range schema.Tables() {
		if err := w.writeTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeTable(ctx context.Context, table etl.Table) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to encode %s header: %w", table.Name, err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(formatRow(row)); err != nil {
			return fmt.Errorf("failed to encode %s row: %w", table.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", table.Name, err)
	}

	key := path.Join(w.prefix, table.Name+".csv")
	if err := w.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		return fmt.Errorf("failed to save %s: %w", table.Name, err)
	}

	logging.Info().
		Str("table", table.Name).
		Str("object", key).
		Int("rows", len(table.Rows)).
		Msg("Saved table")

	return nil
}

func formatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatValue(v)
	}
	return out
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}
