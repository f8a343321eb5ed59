package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
	"github.com/MrJamesThe3rd/tally/internal/vendor"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ingest
type VendorResolver interface {
	Resolve(ctx context.Context, name string, category *string) *vendor.Vendor
}

type InvoiceWriter interface {
	Create(ctx context.Context, params invoice.CreateParams) (*invoice.Invoice, error)
	AddLineItem(ctx context.Context, invoiceID uuid.UUID, params invoice.LineItemParams) (*invoice.LineItem, error)
	AddPayment(ctx context.Context, invoiceID uuid.UUID, params invoice.PaymentParams) (*invoice.Payment, error)
}

type Service struct {
	vendors  VendorResolver
	invoices InvoiceWriter
	now      func() time.Time
}

func NewService(vendors VendorResolver, invoices InvoiceWriter) *Service {
	return &Service{
		vendors:  vendors,
		invoices: invoices,
		now:      time.Now,
	}
}

// Ingest normalizes and persists docs one at a time, in order. Each invoice
// is created before its line items and payments so they can reference its
// new id. Failures below the feed level are recorded as diagnostics and
// never stop the batch; only a cancelled context does.
func (s *Service) Ingest(ctx context.Context, docs []Document) (*Result, error) {
	res := &Result{}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		s.ingestRecord(ctx, res, i, Normalize(doc, s.now().UTC()))
	}

	return res, nil
}

func (s *Service) ingestRecord(ctx context.Context, res *Result, idx int, rec Record) {
	res.Records++

	var vendorID *uuid.UUID

	if v := s.vendors.Resolve(ctx, rec.VendorName, rec.VendorCategory); v != nil {
		vendorID = &v.ID
	} else if rec.VendorName != "" {
		res.add(Diagnostic{Record: idx, Kind: KindVendorResolution, Err: errVendorUnresolved(rec.VendorName)})
	}

	for _, pos := range rec.Rejected {
		res.add(Diagnostic{Record: idx, Invoice: pos, Kind: KindInvoiceCreation, Err: errNotAnObject})
	}

	for _, draft := range rec.Invoices {
		s.ingestInvoice(ctx, res, idx, draft, vendorID)
	}
}

func (s *Service) ingestInvoice(ctx context.Context, res *Result, idx int, draft Draft, vendorID *uuid.UUID) {
	params := draft.Invoice
	params.VendorID = vendorID

	inv, err := s.invoices.Create(ctx, params)
	if err != nil {
		res.add(Diagnostic{Record: idx, Invoice: draft.Index, Kind: KindInvoiceCreation, Err: err})
		return
	}

	res.Invoices++

	for _, item := range draft.LineItems {
		if _, err := s.invoices.AddLineItem(ctx, inv.ID, item); err != nil {
			res.add(Diagnostic{Record: idx, Invoice: draft.Index, Kind: KindChildRecord, Err: err})
			continue
		}

		res.LineItems++
	}

	for _, p := range draft.Payments {
		if _, err := s.invoices.AddPayment(ctx, inv.ID, p); err != nil {
			res.add(Diagnostic{Record: idx, Invoice: draft.Index, Kind: KindChildRecord, Err: err})
			continue
		}

		res.Payments++
	}
}

func (r *Result) add(d Diagnostic) {
	slog.Warn("ingestion record degraded",
		"record", d.Record,
		"invoice", d.Invoice,
		"kind", d.Kind,
		"error", d.Err,
	)

	r.Diagnostics = append(r.Diagnostics, d)
}
