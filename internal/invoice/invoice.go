package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("invoice not found")
	ErrInvalidSort = errors.New("invalid sort field")
)

// DefaultStatus is assigned to invoices whose source record carries none.
const DefaultStatus = "processed"

// Invoice is the canonical invoice record. VendorID is nil when the vendor
// could not be resolved at ingestion time.
type Invoice struct {
	ID        uuid.UUID
	InvoiceNo string
	Date      time.Time
	Amount    decimal.Decimal
	Status    string
	VendorID  *uuid.UUID
	Vendor    *Vendor // Loaded via JOIN
	LineItems []*LineItem
	Payments  []*Payment
	CreatedAt time.Time
}

// Vendor is the slice of the vendor record that invoice reads need.
type Vendor struct {
	ID       uuid.UUID
	Name     string
	Category *string
}

// LineItem belongs to exactly one invoice and is removed with it.
type LineItem struct {
	ID          uuid.UUID
	Description string
	Quantity    int
	Price       decimal.Decimal
	InvoiceID   uuid.UUID
}

// Payment belongs to exactly one invoice and is removed with it.
type Payment struct {
	ID        uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	InvoiceID uuid.UUID
}

// VendorName returns the joined vendor name, or "" for unresolved vendors.
func (i *Invoice) VendorName() string {
	if i.Vendor == nil {
		return ""
	}

	return i.Vendor.Name
}
