package model

import (
	"fmt"
	"time"
)

// Dataset tags the three tables the pipeline produces. The tag is embedded
// in the scratch filename, so same-day reruns overwrite the same file.
type Dataset string

const (
	DatasetUsers    Dataset = "USERS"
	DatasetProducts Dataset = "PRODUCTS"
	DatasetCarts    Dataset = "CARTS"
)

const dateLayout = "2006-01-02"

// ScratchFileName returns the date-tagged filename of a dataset's
// columnar file, e.g. "2025-10-20-USERS.parquet".
func ScratchFileName(dataset Dataset, day time.Time) string {
	return fmt.Sprintf("%s-%s.parquet", day.Format(dateLayout), dataset)
}

// ObjectKey returns the bucket key for an uploaded scratch file. Keys stay
// collision-free across runs sharing a date because the filename carries
// the same date.
func ObjectKey(day time.Time, filename string) string {
	return day.Format(dateLayout) + "/" + filename
}

// Field order below fixes the column order of each table.

type UserRow struct {
	UserID    int64     `parquet:"user_id,snappy"`
	FirstName string    `parquet:"first_name,snappy"`
	LastName  string    `parquet:"last_name,snappy"`
	UserName  string    `parquet:"user_name,snappy"`
	Email     string    `parquet:"email,snappy"`
	Password  string    `parquet:"password,snappy"`
	Phone     string    `parquet:"phone,snappy"`
	City      string    `parquet:"city,snappy"`
	Street    string    `parquet:"street,snappy"`
	Number    int64     `parquet:"number,snappy"`
	Zipcode   string    `parquet:"zipcode,snappy"`
	CreatedAt time.Time `parquet:"created_at,snappy"`
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}

type ProductRow struct {
	ProductID   int64     `parquet:"product_id,snappy"`
	ProductName string    `parquet:"product_name,snappy"`
	Description string    `parquet:"description,snappy"`
	Category    string    `parquet:"category,snappy"`
	Image       string    `parquet:"image,snappy"`
	Price       float64   `parquet:"price,snappy"`
	CreatedAt   time.Time `parquet:"created_at,snappy"`
	UpdatedAt   time.Time `parquet:"updated_at,snappy"`
}

// CartLineRow is one (cart, product) pair; a cart with N distinct
// products yields N rows.
type CartLineRow struct {
	CartID    int64     `parquet:"cart_id,snappy"`
	UserID    int64     `parquet:"user_id,snappy"`
	ProductID int64     `parquet:"product_id,snappy"`
	Quantity  int64     `parquet:"quantity,snappy"`
	Date      time.Time `parquet:"date,snappy"`
	CreatedAt time.Time `parquet:"created_at,snappy"`
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}
