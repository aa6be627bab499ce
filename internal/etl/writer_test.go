package etl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"fakestore-etl/internal/model"
	apperrors "fakestore-etl/pkg/errors"
)

func TestWriteTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 10, 20, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, 10, 20, 23, 59, 1, 0, time.UTC)

	rows := []model.ProductRow{
		{ProductID: 1, ProductName: "Backpack", Description: "d", Category: "c", Image: "i", Price: 109.95, CreatedAt: now, UpdatedAt: now},
		{ProductID: 2, ProductName: "Shirt", Description: "d2", Category: "c2", Image: "i2", Price: 22.3, CreatedAt: now, UpdatedAt: now},
	}

	path, err := WriteTable(dir, model.DatasetProducts, day, rows)
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if filepath.Base(path) != "2025-10-20-PRODUCTS.parquet" {
		t.Errorf("Unexpected filename %q", filepath.Base(path))
	}

	got, err := parquet.ReadFile[model.ProductRow](path)
	if err != nil {
		t.Fatalf("Failed to read parquet file back: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got))
	}
	if got[0].ProductID != 1 || got[0].ProductName != "Backpack" || got[0].Price != 109.95 {
		t.Errorf("Unexpected first row: %+v", got[0])
	}
}

func TestWriteTableCreatesScratchDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	_, err := WriteTable(dir, model.DatasetUsers, time.Now(), []model.UserRow{})
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Scratch directory was not created: %v", err)
	}
}

func TestWriteTableEmptyTableStillWritesFile(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	path, err := WriteTable(dir, model.DatasetCarts, day, []model.CartLineRow{})
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	got, err := parquet.ReadFile[model.CartLineRow](path)
	if err != nil {
		t.Fatalf("Failed to read parquet file back: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty table, got %d rows", len(got))
	}
}

func TestWriteTableSameDayRerunOverwrites(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	user := model.UserRow{UserID: 1, FirstName: "A", LastName: "B", UserName: "ab", Email: "a@b.com"}

	first := user
	first.CreatedAt = day.Add(1 * time.Hour)
	first.UpdatedAt = first.CreatedAt

	second := user
	second.CreatedAt = day.Add(2 * time.Hour)
	second.UpdatedAt = second.CreatedAt

	path1, err := WriteTable(dir, model.DatasetUsers, day, []model.UserRow{first})
	if err != nil {
		t.Fatalf("First WriteTable failed: %v", err)
	}
	path2, err := WriteTable(dir, model.DatasetUsers, day, []model.UserRow{second})
	if err != nil {
		t.Fatalf("Second WriteTable failed: %v", err)
	}
	if path1 != path2 {
		t.Fatalf("Same-day reruns must target the same file: %q vs %q", path1, path2)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected exactly one file per dataset per day, got %d", len(entries))
	}

	got, err := parquet.ReadFile[model.UserRow](path2)
	if err != nil {
		t.Fatalf("Failed to read parquet file back: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 row after overwrite, got %d", len(got))
	}

	// Table content equivalent to the first write, ignoring timestamps.
	got[0].CreatedAt, got[0].UpdatedAt = first.CreatedAt, first.UpdatedAt
	if got[0] != first {
		t.Errorf("Rerun content differs beyond timestamps.\n got: %+v\nwant: %+v", got[0], first)
	}
}

func TestWriteTableIOFailure(t *testing.T) {
	// A file standing where the scratch directory should be forces MkdirAll to fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "data")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	_, err := WriteTable(blocked, model.DatasetUsers, time.Now(), []model.UserRow{})
	var lerr apperrors.LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("Expected LoadError, got %v", err)
	}
	if lerr.Dataset != "USERS" {
		t.Errorf("Expected dataset USERS in error, got %q", lerr.Dataset)
	}
}
