package etl

import (
	"math"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	raw := []RawRecord{
		{
			InvoiceNo:   "536365",
			StockCode:   "85123A",
			Description: "WHITE HANGING HEART T-LIGHT HOLDER",
			Quantity:    "6",
			UnitPrice:   "2.55",
			CustomerID:  "17850",
			Country:     "United Kingdom",
			InvoiceDate: "2010-12-01 08:26:00",
		},
	}

	records, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.InvoiceNo != "536365" {
		t.Errorf("Expected InvoiceNo '536365', got %q", r.InvoiceNo)
	}
	if r.Quantity != 6 {
		t.Errorf("Expected Quantity 6, got %d", r.Quantity)
	}
	if r.UnitPrice != 2.55 {
		t.Errorf("Expected UnitPrice 2.55, got %v", r.UnitPrice)
	}
	if r.CustomerID != 17850 {
		t.Errorf("Expected CustomerID 17850, got %d", r.CustomerID)
	}
	// The sales amount is a floating-point product, so compare with a
	// tolerance rather than against an exact constant.
	if math.Abs(r.SalesAmount-15.3) > 1e-9 {
		t.Errorf("Expected SalesAmount 15.3, got %v", r.SalesAmount)
	}
	want := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	if !r.InvoiceDate.Equal(want) {
		t.Errorf("Expected InvoiceDate %v, got %v", want, r.InvoiceDate)
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	raw := []RawRecord{
		{
			InvoiceNo:   "536366",
			StockCode:   "71053",
			Description: "",
			Quantity:    "2",
			UnitPrice:   "3.39",
			CustomerID:  "",
			Country:     "France",
			InvoiceDate: "2010-12-01",
		},
	}

	records, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	r := records[0]
	if r.Description != UnknownProduct {
		t.Errorf("Expected placeholder description %q, got %q", UnknownProduct, r.Description)
	}
	if r.CustomerID != MissingCustomerID {
		t.Errorf("Expected sentinel CustomerID %d, got %d", MissingCustomerID, r.CustomerID)
	}
}

func TestNormalizeCustomerIDFloatForm(t *testing.T) {
	// Some exports write customer ids as floats.
	raw := []RawRecord{{
		InvoiceNo: "536367", StockCode: "84879", Description: "X",
		Quantity: "1", UnitPrice: "1.00", CustomerID: "13047.0",
		Country: "United Kingdom", InvoiceDate: "2010-12-01",
	}}

	records, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if records[0].CustomerID != 13047 {
		t.Errorf("Expected CustomerID 13047, got %d", records[0].CustomerID)
	}
}

func TestNormalizeDateLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2010-12-01 08:26:00", time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)},
		{"2010-12-01", time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"12/1/2010 8:26", time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)},
		{"12/1/2010", time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.input)
		if err != nil {
			t.Errorf("parseDate(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeBadFields(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
	}{
		{
			name: "bad date",
			raw: RawRecord{
				InvoiceNo: "1", StockCode: "A", Quantity: "1",
				UnitPrice: "1.0", Country: "US", InvoiceDate: "not-a-date",
			},
		},
		{
			name: "bad quantity",
			raw: RawRecord{
				InvoiceNo: "1", StockCode: "A", Quantity: "six",
				UnitPrice: "1.0", Country: "US", InvoiceDate: "2021-03-05",
			},
		},
		{
			name: "bad unit price",
			raw: RawRecord{
				InvoiceNo: "1", StockCode: "A", Quantity: "1",
				UnitPrice: "free", Country: "US", InvoiceDate: "2021-03-05",
			},
		},
		{
			name: "bad customer id",
			raw: RawRecord{
				InvoiceNo: "1", StockCode: "A", Quantity: "1",
				UnitPrice: "1.0", CustomerID: "abc", Country: "US", InvoiceDate: "2021-03-05",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]RawRecord{tt.raw})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !IsKind(err, KindNormalization) {
				t.Errorf("Expected normalization error, got %v", err)
			}
		})
	}
}
