// Package memory is a process-local store implementing the vendor, invoice
// and analytics repositories. It backs dry-run ingestion and tests; rows
// enumerate in insertion order.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	"github.com/MrJamesThe3rd/tally/internal/vendor"
)

type Store struct {
	mu sync.RWMutex

	vendors      []*vendor.Vendor
	vendorByName map[string]*vendor.Vendor
	vendorByID   map[uuid.UUID]*vendor.Vendor

	invoices  []*invoice.Invoice
	invoiceBy map[uuid.UUID]*invoice.Invoice

	now func() time.Time
}

func New() *Store {
	return &Store{
		vendorByName: make(map[string]*vendor.Vendor),
		vendorByID:   make(map[uuid.UUID]*vendor.Vendor),
		invoiceBy:    make(map[uuid.UUID]*invoice.Invoice),
		now:          time.Now,
	}
}

func (s *Store) UpsertVendor(_ context.Context, name string, category *string) (*vendor.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()

	if v, ok := s.vendorByName[name]; ok {
		if category != nil {
			v.Category = copyString(category)
		}

		v.UpdatedAt = ts

		return copyVendor(v), nil
	}

	v := &vendor.Vendor{
		ID:        uuid.New(),
		Name:      name,
		Category:  copyString(category),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	s.vendors = append(s.vendors, v)
	s.vendorByName[name] = v
	s.vendorByID[v.ID] = v

	return copyVendor(v), nil
}

func (s *Store) SetCategory(_ context.Context, id uuid.UUID, category *string) (*vendor.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vendorByID[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}

	v.Category = copyString(category)
	v.UpdatedAt = s.now().UTC()

	return copyVendor(v), nil
}

func (s *Store) GetVendor(_ context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vendorByID[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}

	return copyVendor(v), nil
}

func (s *Store) ListVendors(_ context.Context) ([]*vendor.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*vendor.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, copyVendor(v))
	}

	return out, nil
}

// CreateInvoice stores inv and assigns its id. A vendor id that names no
// vendor is dropped, mirroring the nullable foreign key.
func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.ID = uuid.New()
	inv.CreatedAt = s.now().UTC()

	if inv.VendorID != nil {
		if _, ok := s.vendorByID[*inv.VendorID]; !ok {
			inv.VendorID = nil
		}
	}

	stored := *inv
	stored.Vendor = nil
	stored.LineItems = nil
	stored.Payments = nil

	s.invoices = append(s.invoices, &stored)
	s.invoiceBy[stored.ID] = &stored

	return nil
}

func (s *Store) CreateLineItem(_ context.Context, item *invoice.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoiceBy[item.InvoiceID]
	if !ok {
		return invoice.ErrNotFound
	}

	item.ID = uuid.New()
	stored := *item
	inv.LineItems = append(inv.LineItems, &stored)

	return nil
}

func (s *Store) CreatePayment(_ context.Context, p *invoice.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoiceBy[p.InvoiceID]
	if !ok {
		return invoice.ErrNotFound
	}

	p.ID = uuid.New()
	stored := *p
	inv.Payments = append(inv.Payments, &stored)

	return nil
}

func (s *Store) GetInvoice(_ context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoiceBy[id]
	if !ok {
		return nil, invoice.ErrNotFound
	}

	out := s.view(inv)

	for _, item := range inv.LineItems {
		c := *item
		out.LineItems = append(out.LineItems, &c)
	}

	for _, p := range inv.Payments {
		c := *p
		out.Payments = append(out.Payments, &c)
	}

	slices.SortStableFunc(out.Payments, func(a, b *invoice.Payment) int {
		return a.Date.Compare(b.Date)
	})

	return out, nil
}

func (s *Store) SearchInvoices(_ context.Context, filter invoice.SearchFilter) ([]*invoice.Invoice, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*invoice.Invoice

	for _, inv := range s.invoices {
		if v := s.view(inv); filter.Match(v) {
			matches = append(matches, v)
		}
	}

	slices.SortStableFunc(matches, func(a, b *invoice.Invoice) int {
		switch {
		case filter.Less(a, b):
			return -1
		case filter.Less(b, a):
			return 1
		}

		return 0
	})

	total := len(matches)
	start := min(max(filter.Offset, 0), total)
	end := min(start+filter.Limit, total)

	return matches[start:end], total, nil
}

func (s *Store) Summary(_ context.Context) (analytics.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum analytics.Summary

	for _, inv := range s.invoices {
		sum.Total = sum.Total.Add(inv.Amount)
		sum.Count++
	}

	if sum.Count > 0 {
		sum.Average = sum.Total.Div(decimal.NewFromInt(int64(sum.Count)))
	}

	return sum, nil
}

func (s *Store) ListInvoicePoints(_ context.Context, filter analytics.PointFilter) ([]analytics.InvoicePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var points []analytics.InvoicePoint

	for _, inv := range s.invoices {
		if filter.NegativeOnly && !inv.Amount.IsNegative() {
			continue
		}

		if filter.Start != nil && inv.Date.Before(*filter.Start) {
			continue
		}

		if filter.End != nil && inv.Date.After(*filter.End) {
			continue
		}

		points = append(points, analytics.InvoicePoint{Date: inv.Date, Amount: inv.Amount})
	}

	slices.SortStableFunc(points, func(a, b analytics.InvoicePoint) int {
		return a.Date.Compare(b.Date)
	})

	return points, nil
}

func (s *Store) ListVendorTotals(_ context.Context) ([]analytics.VendorSpend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[uuid.UUID]decimal.Decimal, len(s.vendors))

	for _, inv := range s.invoices {
		if inv.VendorID != nil {
			totals[*inv.VendorID] = totals[*inv.VendorID].Add(inv.Amount)
		}
	}

	out := make([]analytics.VendorSpend, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, analytics.VendorSpend{
			ID:          v.ID,
			Name:        v.Name,
			Category:    copyString(v.Category),
			TotalAmount: totals[v.ID],
		})
	}

	return out, nil
}

// view copies inv without children and attaches the vendor as it is now.
func (s *Store) view(inv *invoice.Invoice) *invoice.Invoice {
	out := *inv
	out.LineItems = nil
	out.Payments = nil
	out.Vendor = nil

	if inv.VendorID != nil {
		if v, ok := s.vendorByID[*inv.VendorID]; ok {
			out.Vendor = &invoice.Vendor{ID: v.ID, Name: v.Name, Category: copyString(v.Category)}
		}
	}

	return &out
}

func copyVendor(v *vendor.Vendor) *vendor.Vendor {
	c := *v
	c.Category = copyString(v.Category)

	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}

	return new(*s)
}
