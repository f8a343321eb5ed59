package ingest

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/coerce"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

const (
	UnknownVendor      = "Unknown Vendor"
	DefaultDescription = "Item"
	DefaultQuantity    = 1
)

// Record is the canonical reading of one raw record: the vendor it belongs
// to and the invoices it describes.
type Record struct {
	Shape          Shape
	VendorName     string
	VendorCategory *string
	Invoices       []Draft
	// Rejected lists positions in a vendor-grouped invoices array that were
	// not objects.
	Rejected []int
}

// Draft is one invoice ready to be persisted, minus its vendor reference.
type Draft struct {
	// Index is the position in the source invoices array; always 0 for flat
	// records.
	Index     int
	Invoice   invoice.CreateParams
	LineItems []invoice.LineItemParams
	Payments  []invoice.PaymentParams
}

// Normalize resolves every fallback chain of a record. now stands in for
// missing dates and seeds placeholder invoice numbers.
func Normalize(d Document, now time.Time) Record {
	shape := DetectShape(d)
	fields := fieldsFor(shape)

	if shape == ShapeVendorGrouped {
		rec := Record{Shape: shape}
		rec.VendorName, _ = groupNameField.str(d)
		rec.VendorCategory = optional(groupCategoryField.str(d))

		entries, _ := d.Lookup("invoices")
		for i, entry := range entries.([]any) {
			m, ok := asObject(entry)
			if !ok {
				rec.Rejected = append(rec.Rejected, i)
				continue
			}

			placeholder := fmt.Sprintf("INV-%d-%d", now.UnixMilli(), i)
			draft := normalizeInvoice(Document(m), fields, now, placeholder)
			draft.Index = i
			rec.Invoices = append(rec.Invoices, draft)
		}

		return rec
	}

	name, ok := vendorNameField.str(d)
	if !ok {
		name = UnknownVendor
	}

	return Record{
		Shape:          shape,
		VendorName:     name,
		VendorCategory: optional(vendorCategoryField.str(d)),
		Invoices:       []Draft{normalizeInvoice(d, fields, now, fmt.Sprintf("INV-%d", now.UnixMilli()))},
	}
}

// placeholder is the invoice number used when the record carries none.
func normalizeInvoice(d Document, fields invoiceFields, now time.Time, placeholder string) Draft {
	var draft Draft

	draft.Invoice.InvoiceNo = invoiceNumber(d, placeholder)

	date, _ := fields.date.scalar(d)
	draft.Invoice.Date = coerce.ToDate(date, now)

	amount, _ := fields.amount.scalar(d)
	draft.Invoice.Amount = coerce.ToNumber(amount)

	status, ok := statusField.str(d)
	if !ok {
		status = invoice.DefaultStatus
	}

	draft.Invoice.Status = status

	if items, ok := fields.lineItems.array(d); ok {
		for _, entry := range items {
			if m, ok := asObject(entry); ok {
				draft.LineItems = append(draft.LineItems, normalizeLineItem(Document(m)))
			}
		}
	}

	draft.Payments = normalizePayments(d, fields, now)

	return draft
}

func invoiceNumber(d Document, placeholder string) string {
	if no, ok := invoiceNoField.str(d); ok {
		return no
	}

	if id, ok := recordIDField.str(d); ok {
		return id
	}

	return placeholder
}

func normalizeLineItem(d Document) invoice.LineItemParams {
	desc, ok := itemDescriptionField.str(d)
	if !ok {
		desc = DefaultDescription
	}

	qty, _ := itemQuantityField.scalar(d)
	price, _ := itemPriceField.scalar(d)

	return invoice.LineItemParams{
		Description: desc,
		Quantity:    coerce.ToInteger(qty, DefaultQuantity),
		Price:       coerce.ToNumber(price),
	}
}

// normalizePayments maps an explicit payments array entry by entry. Without
// one, a due date in the extraction metadata yields a single zero payment.
func normalizePayments(d Document, fields invoiceFields, now time.Time) []invoice.PaymentParams {
	if entries, ok := paymentsField.array(d); ok {
		var payments []invoice.PaymentParams

		for _, entry := range entries {
			m, ok := asObject(entry)
			if !ok {
				continue
			}

			amount, _ := paymentAmountField.scalar(Document(m))
			date, _ := paymentDateField.scalar(Document(m))

			payments = append(payments, invoice.PaymentParams{
				Amount: coerce.ToNumber(amount),
				Date:   coerce.ToDate(date, now),
			})
		}

		return payments
	}

	due, ok := fields.dueDate.scalar(d)
	if !ok {
		return nil
	}

	return []invoice.PaymentParams{{
		Amount: coerce.ToNumber(nil),
		Date:   coerce.ToDate(due, now),
	}}
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}

	return &s
}
