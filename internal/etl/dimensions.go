package etl

import "time"

// DateRow is one DimDate row: one per distinct calendar date in the input.
type DateRow struct {
	DateKey  int
	FullDate time.Time
	Day      int
	Month    int
	Quarter  int
	Year     int
	Weekday  string
}

// ProductRow is one DimProduct row. Two records sharing a stock code but
// differing in description form two distinct rows; variants are not
// canonicalized.
type ProductRow struct {
	ProductKey  int
	StockCode   string
	Description string
}

// CustomerRow is one DimCustomer row, keyed by (customer id, country).
type CustomerRow struct {
	CustomerKey int
	CustomerID  int
	Country     string
}

type productIdent struct {
	stockCode   string
	description string
}

type customerIdent struct {
	customerID int
	country    string
}

// Dimensions holds the three dimension tables plus the lookup indexes the
// fact assembler joins through.
//
// Product and customer surrogate keys are the 1-based rank of first
// occurrence over the input sequence. They are deterministic for a fixed
// input ordering, but they are recomputed from scratch every run: nothing
// looks up keys already present in the warehouse, so keys are not stable
// across runs whose inputs differ.
type Dimensions struct {
	Dates     []DateRow
	Products  []ProductRow
	Customers []CustomerRow

	dates     map[int]struct{}
	products  map[productIdent]int
	customers map[customerIdent]int
}

// DateKey encodes the calendar date of t as an integer, e.g.
// 2021-03-05 -> 20210305. It is derivable from the date alone.
func DateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// BuildDimensions extracts the distinct dimension value-sets from the
// normalized records, preserving first-occurrence order.
func BuildDimensions(records []Record) *Dimensions {
	dims := &Dimensions{
		dates:     make(map[int]struct{}),
		products:  make(map[productIdent]int),
		customers: make(map[customerIdent]int),
	}

	for _, r := range records {
		key := DateKey(r.InvoiceDate)
		if _, ok := dims.dates[key]; !ok {
			dims.dates[key] = struct{}{}
			dims.Dates = append(dims.Dates, newDateRow(r.InvoiceDate))
		}

		p := productIdent{stockCode: r.StockCode, description: r.Description}
		if _, ok := dims.products[p]; !ok {
			dims.products[p] = len(dims.Products) + 1
			dims.Products = append(dims.Products, ProductRow{
				ProductKey:  len(dims.Products) + 1,
				StockCode:   r.StockCode,
				Description: r.Description,
			})
		}

		c := customerIdent{customerID: r.CustomerID, country: r.Country}
		if _, ok := dims.customers[c]; !ok {
			dims.customers[c] = len(dims.Customers) + 1
			dims.Customers = append(dims.Customers, CustomerRow{
				CustomerKey: len(dims.Customers) + 1,
				CustomerID:  r.CustomerID,
				Country:     r.Country,
			})
		}
	}

	return dims
}

func newDateRow(t time.Time) DateRow {
	y, m, d := t.Date()
	return DateRow{
		DateKey:  DateKey(t),
		FullDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Day:      d,
		Month:    int(m),
		Quarter:  (int(m)-1)/3 + 1,
		Year:     y,
		Weekday:  t.Weekday().String(),
	}
}

func (d *Dimensions) dateKey(t time.Time) (int, bool) {
	key := DateKey(t)
	_, ok := d.dates[key]
	return key, ok
}

func (d *Dimensions) productKey(stockCode, description string) (int, bool) {
	key, ok := d.products[productIdent{stockCode: stockCode, description: description}]
	return key, ok
}

func (d *Dimensions) customerKey(customerID int, country string) (int, bool) {
	key, ok := d.customers[customerIdent{customerID: customerID, country: country}]
	return key, ok
}
