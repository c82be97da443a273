package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	content := "InvoiceNo,StockCode\n536365,85123A\n"
	if err := store.Put(ctx, "raw/sales.csv", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	obj, err := store.Get(ctx, "raw/sales.csv")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer obj.Close()

	got, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != content {
		t.Errorf("Expected %q, got %q", content, string(got))
	}
}

func TestLocalStoreGetMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	if _, err := store.Get(context.Background(), "raw/missing.csv"); err == nil {
		t.Error("Expected error for missing object")
	}
}

func TestNewUnsupportedType(t *testing.T) {
	if _, err := New(Config{Type: "ftp"}); err == nil {
		t.Error("Expected error for unsupported storage type")
	}
}
