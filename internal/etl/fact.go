package etl

import "fmt"

// FactRow is one FactSales row: a sales transaction projected onto the
// dimension surrogate keys.
type FactRow struct {
	InvoiceNo   string
	DateKey     int
	ProductKey  int
	CustomerKey int
	Quantity    int
	UnitPrice   float64
	SalesAmount float64
}

// StarSchema is the finished output of one run: three dimension tables and
// the fact table referencing them. All four are fresh values each run; the
// warehouse owns them once loaded.
type StarSchema struct {
	Dates     []DateRow
	Products  []ProductRow
	Customers []CustomerRow
	Facts     []FactRow
}

// AssembleFacts joins every record against the three dimensions and
// projects it onto FactSales columns. Dimensions are built from the same
// records, so every key must resolve; a miss is a defect and fails the run
// with an integrity error. The output always has one row per input record.
func AssembleFacts(records []Record, dims *Dimensions) ([]FactRow, error) {
	facts := make([]FactRow, 0, len(records))
	for _, r := range records {
		dateKey, ok := dims.dateKey(r.InvoiceDate)
		if !ok {
			return nil, IntegrityError("resolve date key",
				fmt.Errorf("invoice %s: no DimDate row for %s", r.InvoiceNo, r.InvoiceDate.Format("2006-01-02")))
		}
		productKey, ok := dims.productKey(r.StockCode, r.Description)
		if !ok {
			return nil, IntegrityError("resolve product key",
				fmt.Errorf("invoice %s: no DimProduct row for (%s, %s)", r.InvoiceNo, r.StockCode, r.Description))
		}
		customerKey, ok := dims.customerKey(r.CustomerID, r.Country)
		if !ok {
			return nil, IntegrityError("resolve customer key",
				fmt.Errorf("invoice %s: no DimCustomer row for (%d, %s)", r.InvoiceNo, r.CustomerID, r.Country))
		}

		facts = append(facts, FactRow{
			InvoiceNo:   r.InvoiceNo,
			DateKey:     dateKey,
			ProductKey:  productKey,
			CustomerKey: customerKey,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			SalesAmount: r.SalesAmount,
		})
	}
	return facts, nil
}

// Build runs the dimension builder and fact assembler over one normalized
// snapshot.
func Build(records []Record) (*StarSchema, error) {
	dims := BuildDimensions(records)
	facts, err := AssembleFacts(records, dims)
	if err != nil {
		return nil, err
	}
	return &StarSchema{
		Dates:     dims.Dates,
		Products:  dims.Products,
		Customers: dims.Customers,
		Facts:     facts,
	}, nil
}
