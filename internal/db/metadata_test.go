package db

import (
	"context"
	"testing"

	"github.com/starload/starload/internal/testutil"
	"github.com/starload/starload/pkg/version"
)

func TestRunMetadata(t *testing.T) {
	base := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, base, "metadata")
	cleanup := testutil.NewTestCleanup(t, base, testutil.GetDBNameFromConnStr(connStr))
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, connStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	exists, err := MetadataExists(ctx, pool)
	if err != nil {
		t.Fatalf("MetadataExists failed: %v", err)
	}
	if exists {
		t.Fatal("Expected no metadata table in a fresh database")
	}

	if err := SaveRunMetadata(ctx, pool, "raw-sales.csv", 42); err != nil {
		t.Fatalf("SaveRunMetadata failed: %v", err)
	}

	exists, err = MetadataExists(ctx, pool)
	if err != nil {
		t.Fatalf("MetadataExists failed: %v", err)
	}
	if !exists {
		t.Fatal("Expected metadata table after SaveRunMetadata")
	}

	value, err := GetMetadataValue(ctx, pool, "source_object")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if value != "raw-sales.csv" {
		t.Errorf("Expected source_object 'raw-sales.csv', got %q", value)
	}

	metadata, err := GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("GetAllMetadata failed: %v", err)
	}
	if metadata["fact_rows_loaded"] != "42" {
		t.Errorf("Expected fact_rows_loaded '42', got %q", metadata["fact_rows_loaded"])
	}
	if metadata["version"] != version.Short() {
		t.Errorf("Expected version %q, got %q", version.Short(), metadata["version"])
	}

	// A second run overwrites the bookkeeping in place.
	if err := SaveRunMetadata(ctx, pool, "raw-sales-2.csv", 7); err != nil {
		t.Fatalf("Second SaveRunMetadata failed: %v", err)
	}
	value, err = GetMetadataValue(ctx, pool, "fact_rows_loaded")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if value != "7" {
		t.Errorf("Expected fact_rows_loaded '7', got %q", value)
	}
}
