//-------------------------------------------------------------------------
//
// starload - Sales Star Schema ETL
//
// Copyright (c) 2025 - 2026, the starload authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package seed generates synthetic raw sales snapshots so a fresh
// environment can exercise the pipeline end to end.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/source"
)

// Generator produces raw sales records in the shape of the retail input
// CSV, including the messiness the normalizer has to handle: missing
// customer ids, missing descriptions, float-formatted ids.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator with a random seed.
func NewGenerator() *Generator {
	return &Generator{faker: gofakeit.New(uint64(time.Now().UnixNano()))}
}

// NewGeneratorWithSeed creates a generator with a fixed seed for
// reproducible snapshots.
func NewGeneratorWithSeed(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Records generates n raw records grouped into invoices of a few line
// items each, dated within the past year.
func (g *Generator) Records(n int) []etl.RawRecord {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-1, 0, 0)

	records := make([]etl.RawRecord, 0, n)
	for len(records) < n {
		invoiceNo := fmt.Sprintf("%06d", g.faker.Number(100000, 999999))
		invoiceDate := g.faker.DateRange(start, end).Format("2006-01-02 15:04:05")
		country := g.faker.Country()

		customerID := ""
		if g.faker.Number(1, 100) > 5 { // ~5% of invoices have no customer
			customerID = fmt.Sprintf("%d.0", g.faker.Number(10000, 19999))
		}

		lines := g.faker.Number(1, 5)
		for i := 0; i < lines && len(records) < n; i++ {
			description := g.faker.ProductName()
			if g.faker.Number(1, 100) <= 2 {
				description = ""
			}
			records = append(records, etl.RawRecord{
				InvoiceNo:   invoiceNo,
				StockCode:   fmt.Sprintf("%s%d", g.faker.LetterN(1), g.faker.Number(10000, 99999)),
				Description: description,
				Quantity:    fmt.Sprintf("%d", g.faker.Number(1, 48)),
				UnitPrice:   fmt.Sprintf("%.2f", g.faker.Price(0.25, 95.00)),
				CustomerID:  customerID,
				Country:     country,
				InvoiceDate: invoiceDate,
			})
		}
	}
	return records
}

// WriteCSV writes n generated records as a raw sales CSV, header included.
func (g *Generator) WriteCSV(w io.Writer, n int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(source.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range g.Records(n) {
		row := []string{r.InvoiceNo, r.StockCode, r.Description, r.Quantity,
			r.UnitPrice, r.CustomerID, r.Country, r.InvoiceDate}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
