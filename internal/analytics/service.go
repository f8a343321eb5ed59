package analytics

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=analytics
type Repository interface {
	Summary(ctx context.Context) (Summary, error)
	ListInvoicePoints(ctx context.Context, filter PointFilter) ([]InvoicePoint, error)
	// ListVendorTotals returns every vendor, including those without
	// invoices, in the store's enumeration order.
	ListVendorTotals(ctx context.Context) ([]VendorSpend, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats reports totals over all invoices. Every invoice currently comes from
// exactly one uploaded document, so DocumentsUploaded mirrors TotalInvoices.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	sum, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarizing invoices: %w", err)
	}

	avg := sum.Average
	if sum.Count == 0 {
		avg = decimal.Zero
	}

	return &Stats{
		TotalSpend:          sum.Total,
		TotalInvoices:       sum.Count,
		DocumentsUploaded:   sum.Count,
		AverageInvoiceValue: avg,
	}, nil
}

// InvoiceTrends buckets invoices by month, oldest first.
func (s *Service) InvoiceTrends(ctx context.Context) ([]TrendPoint, error) {
	points, err := s.repo.ListInvoicePoints(ctx, PointFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing invoice points: %w", err)
	}

	buckets := make(map[string]*TrendPoint)

	for _, p := range points {
		key := MonthKey(p.Date)

		b, ok := buckets[key]
		if !ok {
			b = &TrendPoint{Month: key}
			buckets[key] = b
		}

		b.InvoiceCount++
		b.TotalAmount = b.TotalAmount.Add(p.Amount)
	}

	trends := make([]TrendPoint, 0, len(buckets))
	for _, key := range sortedKeys(buckets) {
		trends = append(trends, *buckets[key])
	}

	return trends, nil
}

// TopVendors ranks vendors by invoice total, highest first. Equal totals
// keep the store's enumeration order.
func (s *Service) TopVendors(ctx context.Context, limit int) ([]VendorSpend, error) {
	if limit < 1 {
		limit = DefaultTopVendors
	}

	vendors, err := s.repo.ListVendorTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendor totals: %w", err)
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].TotalAmount.GreaterThan(vendors[j].TotalAmount)
	})

	if len(vendors) > limit {
		vendors = vendors[:limit]
	}

	return vendors, nil
}

// CategorySpend sums vendor totals per vendor category. Rows come out in
// the order each category is first seen.
func (s *Service) CategorySpend(ctx context.Context) ([]CategorySpend, error) {
	vendors, err := s.repo.ListVendorTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendor totals: %w", err)
	}

	index := make(map[string]int)

	var rows []CategorySpend

	for _, v := range vendors {
		category := UncategorizedLabel
		if v.Category != nil && *v.Category != "" {
			category = *v.Category
		}

		i, ok := index[category]
		if !ok {
			i = len(rows)
			index[category] = i
			rows = append(rows, CategorySpend{Category: category})
		}

		rows[i].TotalAmount = rows[i].TotalAmount.Add(v.TotalAmount)
	}

	return rows, nil
}

// CashOutflow sums the absolute value of negative invoices per month,
// oldest first, optionally restricted to [start, end].
func (s *Service) CashOutflow(ctx context.Context, start, end *time.Time) ([]OutflowPoint, error) {
	points, err := s.repo.ListInvoicePoints(ctx, PointFilter{
		NegativeOnly: true,
		Start:        start,
		End:          end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing invoice points: %w", err)
	}

	buckets := make(map[string]*OutflowPoint)

	for _, p := range points {
		if !p.Amount.IsNegative() {
			continue
		}

		key := MonthKey(p.Date)

		b, ok := buckets[key]
		if !ok {
			b = &OutflowPoint{Month: key}
			buckets[key] = b
		}

		b.Outflow = b.Outflow.Add(p.Amount.Abs())
	}

	outflow := make([]OutflowPoint, 0, len(buckets))
	for _, key := range sortedKeys(buckets) {
		outflow = append(outflow, *buckets[key])
	}

	return outflow, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
