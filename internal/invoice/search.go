package invoice

import (
	"fmt"
	"math"
	"strings"
)

// Role scopes what the invoice search surface returns. Roles only ever
// narrow results; an unknown or empty role applies no restriction.
type Role string

const (
	RoleAnalyst Role = "Analyst"
	RoleIntern  Role = "Intern"
)

const (
	analystStatus    = "Processed"
	internVendorPart = "Vendor"
)

type SortField string

const (
	SortInvoiceNo  SortField = "invoiceNo"
	SortDate       SortField = "date"
	SortAmount     SortField = "amount"
	SortStatus     SortField = "status"
	SortVendorName SortField = "vendorName"
)

func (f SortField) valid() bool {
	switch f {
	case SortInvoiceNo, SortDate, SortAmount, SortStatus, SortVendorName:
		return true
	}

	return false
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// SearchParams are the caller-facing search filters.
type SearchParams struct {
	Search     string
	Status     string
	VendorName string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
	Role       Role
}

// SearchFilter is what a repository executes. All conditions are ANDed:
// every entry of Statuses must equal the invoice status and every entry of
// VendorNameContains must occur in the vendor name.
type SearchFilter struct {
	InvoiceNoContains  string
	Statuses           []string
	VendorNameContains []string
	SortBy             SortField
	Desc               bool
	Offset             int
	Limit              int
}

// Filter resolves the params into a repository filter. The role restriction
// is applied first and explicit filters are intersected with it, so an
// Analyst asking for status "Pending" gets nothing rather than bypassing the
// role.
func (p SearchParams) Filter() (SearchFilter, error) {
	var f SearchFilter

	switch p.Role {
	case RoleAnalyst:
		f.Statuses = append(f.Statuses, analystStatus)
	case RoleIntern:
		f.VendorNameContains = append(f.VendorNameContains, internVendorPart)
	}

	if s := strings.TrimSpace(p.Status); s != "" {
		f.Statuses = append(f.Statuses, s)
	}

	if s := strings.TrimSpace(p.VendorName); s != "" {
		f.VendorNameContains = append(f.VendorNameContains, s)
	}

	f.InvoiceNoContains = strings.TrimSpace(p.Search)

	f.SortBy = SortDate
	f.Desc = true

	if p.SortBy != "" {
		field := SortField(p.SortBy)
		if !field.valid() {
			return SearchFilter{}, fmt.Errorf("%w: %q", ErrInvalidSort, p.SortBy)
		}

		f.SortBy = field
		f.Desc = p.SortOrder == "desc"
	}

	page := p.Page
	if page < 1 {
		page = DefaultPage
	}

	f.Limit = p.Limit
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}

	f.Limit = min(f.Limit, MaxLimit)

	// Past this page the offset would overflow; every such page is empty anyway.
	page = min(page, math.MaxInt/f.Limit)
	f.Offset = (page - 1) * f.Limit

	return f, nil
}

// Match reports whether inv satisfies every condition of the filter.
func (f SearchFilter) Match(inv *Invoice) bool {
	for _, s := range f.Statuses {
		if inv.Status != s {
			return false
		}
	}

	if f.InvoiceNoContains != "" && !containsFold(inv.InvoiceNo, f.InvoiceNoContains) {
		return false
	}

	for _, part := range f.VendorNameContains {
		if inv.Vendor == nil || !containsFold(inv.Vendor.Name, part) {
			return false
		}
	}

	return true
}

// Less orders a before b under the filter's sort. Ties fall back to id
// ascending so paging is stable.
func (f SearchFilter) Less(a, b *Invoice) bool {
	c := f.compare(a, b)
	if f.Desc {
		c = -c
	}

	if c != 0 {
		return c < 0
	}

	return strings.Compare(a.ID.String(), b.ID.String()) < 0
}

func (f SearchFilter) compare(a, b *Invoice) int {
	switch f.SortBy {
	case SortInvoiceNo:
		return strings.Compare(a.InvoiceNo, b.InvoiceNo)
	case SortAmount:
		return a.Amount.Cmp(b.Amount)
	case SortStatus:
		return strings.Compare(a.Status, b.Status)
	case SortVendorName:
		return strings.Compare(a.VendorName(), b.VendorName())
	}

	return a.Date.Compare(b.Date)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SearchResult is one page of matches plus the unpaginated match count.
type SearchResult struct {
	Invoices   []*Invoice
	TotalCount int
}
