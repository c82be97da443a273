//-------------------------------------------------------------------------
//
// starload - Sales Star Schema ETL
//
// Copyright (c) 2025 - 2026, the starload authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"fmt"
	"strings"
)

// TableSpec describes one warehouse table: its columns, DDL, insert
// template, and conflict behavior. The provisioner and the loader iterate
// these uniformly instead of branching per table.
type TableSpec struct {
	Name    string
	Columns []string

	// ConflictKey is the primary key column for conflict-tolerant inserts.
	// Empty means append-only: re-running the loader on the same snapshot
	// inserts the rows again.
	ConflictKey string

	CreateSQL string
}

// InsertSQL returns the parameterized insert statement for one row,
// with ON CONFLICT DO NOTHING when the table has a conflict key.
func (t TableSpec) InsertSQL() string {
	placeholders := make([]string, len(t.Columns))
	for i := range t.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name,
		strings.Join(t.Columns, ", "),
		strings.Join(placeholders, ", "))
	if t.ConflictKey != "" {
		sql += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", t.ConflictKey)
	}
	return sql
}

var dimDateSpec = TableSpec{
	Name:        "DimDate",
	Columns:     []string{"DateKey", "FullDate", "Day", "Month", "Quarter", "Year", "Weekday"},
	ConflictKey: "DateKey",
	CreateSQL: `
CREATE TABLE IF NOT EXISTS DimDate (
    DateKey  INT PRIMARY KEY,
    FullDate DATE NOT NULL,
    Day      INT,
    Month    INT,
    Quarter  INT,
    Year     INT,
    Weekday  VARCHAR(20)
)`,
}

var dimProductSpec = TableSpec{
	Name:        "DimProduct",
	Columns:     []string{"ProductKey", "StockCode", "Description"},
	ConflictKey: "ProductKey",
	CreateSQL: `
CREATE TABLE IF NOT EXISTS DimProduct (
    ProductKey  INT PRIMARY KEY,
    StockCode   VARCHAR(50) NOT NULL,
    Description TEXT
)`,
}

var dimCustomerSpec = TableSpec{
	Name:        "DimCustomer",
	Columns:     []string{"CustomerKey", "CustomerID", "Country"},
	ConflictKey: "CustomerKey",
	CreateSQL: `
CREATE TABLE IF NOT EXISTS DimCustomer (
    CustomerKey INT PRIMARY KEY,
    CustomerID  INT NOT NULL,
    Country     VARCHAR(50)
)`,
}

// FactSales has no primary key and no conflict target. Re-running a load
// appends the fact rows again; dedup is left to whoever clears the table
// first. Whether the append-only behavior is intentional upstream is an
// open question, so it is preserved rather than corrected.
var factSalesSpec = TableSpec{
	Name:    "FactSales",
	Columns: []string{"InvoiceNo", "DateKey", "ProductKey", "CustomerKey", "Quantity", "UnitPrice", "SalesAmount"},
	CreateSQL: `
CREATE TABLE IF NOT EXISTS FactSales (
    InvoiceNo   VARCHAR(50) NOT NULL,
    DateKey     INT NOT NULL REFERENCES DimDate(DateKey),
    ProductKey  INT NOT NULL REFERENCES DimProduct(ProductKey),
    CustomerKey INT NOT NULL REFERENCES DimCustomer(CustomerKey),
    Quantity    INT,
    UnitPrice   NUMERIC,
    SalesAmount NUMERIC
)`,
}

// Specs returns the four table specs in dependency order: the fact table
// references the dimensions, so it is always created and loaded last.
func Specs() []TableSpec {
	return []TableSpec{dimDateSpec, dimProductSpec, dimCustomerSpec, factSalesSpec}
}

// Table binds a spec to the rows produced by a run.
type Table struct {
	TableSpec
	Rows [][]any
}

// Tables projects the schema onto its table descriptors, rows in column
// order, in load order.
func (s *StarSchema) Tables() []Table {
	dates := Table{TableSpec: dimDateSpec, Rows: make([][]any, 0, len(s.Dates))}
	for _, r := range s.Dates {
		dates.Rows = append(dates.Rows, []any{r.DateKey, r.FullDate, r.Day, r.Month, r.Quarter, r.Year, r.Weekday})
	}

	products := Table{TableSpec: dimProductSpec, Rows: make([][]any, 0, len(s.Products))}
	for _, r := range s.Products {
		products.Rows = append(products.Rows, []any{r.ProductKey, r.StockCode, r.Description})
	}

	customers := Table{TableSpec: dimCustomerSpec, Rows: make([][]any, 0, len(s.Customers))}
	for _, r := range s.Customers {
		customers.Rows = append(customers.Rows, []any{r.CustomerKey, r.CustomerID, r.Country})
	}

	facts := Table{TableSpec: factSalesSpec, Rows: make([][]any, 0, len(s.Facts))}
	for _, r := range s.Facts {
		facts.Rows = append(facts.Rows, []any{r.InvoiceNo, r.DateKey, r.ProductKey, r.CustomerKey, r.Quantity, r.UnitPrice, r.SalesAmount})
	}

	return []Table{dates, products, customers, facts}
}
