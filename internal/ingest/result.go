package ingest

import (
	"errors"
	"fmt"
)

// Kind classifies a recovered ingestion failure.
type Kind string

const (
	// KindVendorResolution: the vendor could not be resolved; the record's
	// invoices were stored without a vendor.
	KindVendorResolution Kind = "vendor_resolution"
	// KindInvoiceCreation: one invoice was abandoned, with its children.
	KindInvoiceCreation Kind = "invoice_creation"
	// KindChildRecord: one line item or payment was skipped.
	KindChildRecord Kind = "child_record"
)

var errNotAnObject = errors.New("invoice entry is not an object")

func errVendorUnresolved(name string) error {
	return fmt.Errorf("vendor %q could not be resolved", name)
}

// Diagnostic describes one recovered failure. Record is the position in the
// feed, Invoice the position inside a vendor-grouped invoices array.
type Diagnostic struct {
	Record  int
	Invoice int
	Kind    Kind
	Err     error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d invoice %d: %s: %v", d.Record, d.Invoice, d.Kind, d.Err)
}

// Result summarizes one ingestion run.
type Result struct {
	Records     int
	Invoices    int
	LineItems   int
	Payments    int
	Diagnostics []Diagnostic
}
