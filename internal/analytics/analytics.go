// Package analytics derives read-side spend views from the canonical
// invoice store. Nothing here writes.
package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel groups vendors that have no category.
const UncategorizedLabel = "Uncategorized"

// DefaultTopVendors is the ranking size used when the caller passes none.
const DefaultTopVendors = 10

type Stats struct {
	TotalSpend          decimal.Decimal
	TotalInvoices       int
	DocumentsUploaded   int
	AverageInvoiceValue decimal.Decimal
}

type TrendPoint struct {
	Month        string
	InvoiceCount int
	TotalAmount  decimal.Decimal
}

type VendorSpend struct {
	ID          uuid.UUID
	Name        string
	Category    *string
	TotalAmount decimal.Decimal
}

type CategorySpend struct {
	Category    string
	TotalAmount decimal.Decimal
}

type OutflowPoint struct {
	Month   string
	Outflow decimal.Decimal
}

// Summary is the store-side aggregate over every invoice.
type Summary struct {
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal
}

// InvoicePoint is the date and amount of a single invoice.
type InvoicePoint struct {
	Date   time.Time
	Amount decimal.Decimal
}

// PointFilter narrows ListInvoicePoints. Start and End are inclusive.
type PointFilter struct {
	NegativeOnly bool
	Start        *time.Time
	End          *time.Time
}

// MonthKey buckets t as "YYYY-MM" in UTC; the keys sort chronologically.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
