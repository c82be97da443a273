package sink

import (
	"context"
	"io"
	"testing"

	"github.com/starload/starload/internal/etl"
	"github.com/starload/starload/internal/storage"
)

func buildSchema(t *testing.T) *etl.StarSchema {
	t.Helper()
	records, err := etl.Normalize([]etl.RawRecord{
		{InvoiceNo: "I1", StockCode: "P1", Description: "Widget", Quantity: "2",
			UnitPrice: "5.0", CustomerID: "100", Country: "US", InvoiceDate: "2021-03-05"},
		{InvoiceNo: "I2", StockCode: "P1", Description: "Widget", Quantity: "1",
			UnitPrice: "5.0", CustomerID: "", Country: "US", InvoiceDate: "2021-03-05"},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	schema, err := etl.Build(records)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return schema
}

func readObject(t *testing.T, store storage.ObjectStore, key string) string {
	t.Helper()
	obj, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get %s failed: %v", key, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("Read %s failed: %v", key, err)
	}
	return string(data)
}

func TestWriteTables(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	writer := NewWriter(store, "cleaned_data")

	if err := writer.WriteTables(context.Background(), buildSchema(t)); err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}

	wantDate := "DateKey,FullDate,Day,Month,Quarter,Year,Weekday\n" +
		"20210305,2021-03-05,5,3,1,2021,Friday\n"
	if got := readObject(t, store, "cleaned_data/DimDate.csv"); got != wantDate {
		t.Errorf("Unexpected DimDate.csv:\n got: %q\nwant: %q", got, wantDate)
	}

	wantProduct := "ProductKey,StockCode,Description\n1,P1,Widget\n"
	if got := readObject(t, store, "cleaned_data/DimProduct.csv"); got != wantProduct {
		t.Errorf("Unexpected DimProduct.csv:\n got: %q\nwant: %q", got, wantProduct)
	}

	wantCustomer := "CustomerKey,CustomerID,Country\n1,100,US\n2,-1,US\n"
	if got := readObject(t, store, "cleaned_data/DimCustomer.csv"); got != wantCustomer {
		t.Errorf("Unexpected DimCustomer.csv:\n got: %q\nwant: %q", got, wantCustomer)
	}

	wantFact := "InvoiceNo,DateKey,ProductKey,CustomerKey,Quantity,UnitPrice,SalesAmount\n" +
		"I1,20210305,1,1,2,5,10\n" +
		"I2,20210305,1,2,1,5,5\n"
	if got := readObject(t, store, "cleaned_data/FactSales.csv"); got != wantFact {
		t.Errorf("Unexpected FactSales.csv:\n got: %q\nwant: %q", got, wantFact)
	}
}
