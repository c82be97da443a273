// Package source extracts raw sales records from a CSV object in the
// object store.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/logging"
	"github.com/starload/starload/internal/storage"
)

// Columns are the raw CSV columns the pipeline consumes, in canonical
// order. The reader addresses them by header name, so the file may carry
// them in any order.
var Columns = []string{
	"InvoiceNo",
	"StockCode",
	"Description",
	"Quantity",
	"UnitPrice",
	"CustomerID",
	"Country",
	"InvoiceDate",
}

// Reader reads one raw sales snapshot from the object store. Any read or
// decode failure is fatal for the run; there is no retry at this layer.
type Reader struct {
	store storage.ObjectStore
	key   string
}

// NewReader creates a reader for the object at key.
func NewReader(store storage.ObjectStore, key string) *Reader {
	return &Reader{store: store, key: key}
}

// Read fetches and decodes the snapshot.
func (r *Reader) Read(ctx context.Context) ([]etl.RawRecord, error) {
	obj, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, etl.SourceReadError("open "+r.key, err)
	}
	defer obj.Close()

	cr := csv.NewReader(obj)
	cr.FieldsPerRecord = -1 // validated against the header below

	header, err := cr.Read()
	if err != nil {
		return nil, etl.SourceReadError("read header of "+r.key, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, etl.SourceReadError("decode "+r.key, fmt.Errorf("missing column %q", name))
		}
	}

	var records []etl.RawRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, etl.SourceReadError(fmt.Sprintf("decode %s line %d", r.key, line), err)
		}
		if len(row) < len(header) {
			return nil, etl.SourceReadError(fmt.Sprintf("decode %s line %d", r.key, line),
				fmt.Errorf("expected %d fields, got %d", len(header), len(row)))
		}
		records = append(records, etl.RawRecord{
			InvoiceNo:   row[index["InvoiceNo"]],
			StockCode:   row[index["StockCode"]],
			Description: row[index["Description"]],
			Quantity:    row[index["Quantity"]],
			UnitPrice:   row[index["UnitPrice"]],
			CustomerID:  row[index["CustomerID"]],
			Country:     row[index["Country"]],
			InvoiceDate: row[index["InvoiceDate"]],
		})
	}

	logging.Info().
		Str("object", r.key).
		Int("rows", len(records)).
		Msg("Extracted raw records")

	return records, nil
}
