// Package etl transforms raw transactional sales records into a star
// schema: three dimension tables (date, product, customer) and one fact
// table referencing them through surrogate keys.
package etl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnknownProduct is the description assigned to records without one.
const UnknownProduct = "unknown product"

// MissingCustomerID is the sentinel for records without a customer.
// Keeping it an integer (never null) lets these records join a real
// DimCustomer row like any other.
const MissingCustomerID = -1

// RawRecord is one undecoded row of the input snapshot, fields exactly as
// they appear in the source CSV.
type RawRecord struct {
	InvoiceNo   string
	StockCode   string
	Description string
	Quantity    string
	UnitPrice   string
	CustomerID  string
	Country     string
	InvoiceDate string
}

// Record is a normalized sales record. No field is ever null-equivalent:
// missing customers become MissingCustomerID and missing descriptions
// become UnknownProduct.
type Record struct {
	InvoiceNo   string
	StockCode   string
	Description string
	Quantity    int
	UnitPrice   float64
	CustomerID  int
	Country     string
	InvoiceDate time.Time
	SalesAmount float64
}

// Layouts the retail export writes dates in. Anything else is a
// normalization error.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Normalize coerces raw records into canonical form. The first record that
// fails to parse fails the whole batch; there is no skip-and-continue.
func Normalize(raw []RawRecord) ([]Record, error) {
	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		rec, err := normalizeRecord(r)
		if err != nil {
			return nil, NormalizationError(fmt.Sprintf("record %d (invoice %q)", i, r.InvoiceNo), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeRecord(r RawRecord) (Record, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
	if err != nil {
		return Record{}, fmt.Errorf("invalid Quantity %q", r.Quantity)
	}

	unitPrice, err := strconv.ParseFloat(strings.TrimSpace(r.UnitPrice), 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid UnitPrice %q", r.UnitPrice)
	}

	customerID, err := parseCustomerID(r.CustomerID)
	if err != nil {
		return Record{}, err
	}

	invoiceDate, err := parseDate(r.InvoiceDate)
	if err != nil {
		return Record{}, err
	}

	description := strings.TrimSpace(r.Description)
	if description == "" {
		description = UnknownProduct
	}

	return Record{
		InvoiceNo:   strings.TrimSpace(r.InvoiceNo),
		StockCode:   strings.TrimSpace(r.StockCode),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CustomerID:  customerID,
		Country:     strings.TrimSpace(r.Country),
		InvoiceDate: invoiceDate,
		SalesAmount: float64(quantity) * unitPrice,
	}, nil
}

// parseCustomerID accepts the empty string (missing customer), plain
// integers, and the "17850.0" float form some exports produce.
func parseCustomerID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MissingCustomerID, nil
	}
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid CustomerID %q", s)
	}
	return int(f), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid InvoiceDate %q", s)
}
