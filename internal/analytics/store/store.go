package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Summary(ctx context.Context) (analytics.Summary, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*), COALESCE(AVG(amount), 0)
		FROM invoices
	`

	var sum analytics.Summary
	if err := s.db.QueryRowContext(ctx, query).Scan(&sum.Total, &sum.Count, &sum.Average); err != nil {
		return analytics.Summary{}, fmt.Errorf("summarizing invoices: %w", err)
	}

	return sum, nil
}

func (s *Store) ListInvoicePoints(ctx context.Context, filter analytics.PointFilter) ([]analytics.InvoicePoint, error) {
	query := `SELECT date, amount FROM invoices`

	var (
		conds []string
		args  []any
	)

	if filter.NegativeOnly {
		conds = append(conds, "amount < 0")
	}

	if filter.Start != nil {
		args = append(args, *filter.Start)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}

	if filter.End != nil {
		args = append(args, *filter.End)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoice points: %w", err)
	}
	defer rows.Close()

	var points []analytics.InvoicePoint

	for rows.Next() {
		var p analytics.InvoicePoint
		if err := rows.Scan(&p.Date, &p.Amount); err != nil {
			return nil, fmt.Errorf("scanning invoice point: %w", err)
		}

		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice points: %w", err)
	}

	return points, nil
}

// ListVendorTotals enumerates vendors in creation order, the order the
// ranking falls back to on ties.
func (s *Store) ListVendorTotals(ctx context.Context) ([]analytics.VendorSpend, error) {
	query := `
		SELECT v.id, v.name, v.category, COALESCE(SUM(i.amount), 0)
		FROM vendors v
		LEFT JOIN invoices i ON i.vendor_id = v.id
		GROUP BY v.id
		ORDER BY v.created_at ASC, v.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vendor totals: %w", err)
	}
	defer rows.Close()

	var vendors []analytics.VendorSpend

	for rows.Next() {
		var (
			v        analytics.VendorSpend
			category sql.NullString
		)

		if err := rows.Scan(&v.ID, &v.Name, &category, &v.TotalAmount); err != nil {
			return nil, fmt.Errorf("scanning vendor total: %w", err)
		}

		if category.Valid {
			v.Category = &category.String
		}

		vendors = append(vendors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vendor totals: %w", err)
	}

	return vendors, nil
}
