package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanInvoice reads an invoice row joined with its vendor.
// Expected column order: id, invoice_no, date, amount, status, vendor_id, created_at, vendor_name, vendor_category
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var vendorName, vendorCategory sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.InvoiceNo, &inv.Date, &inv.Amount, &inv.Status, &inv.VendorID, &inv.CreatedAt,
		&vendorName, &vendorCategory,
	); err != nil {
		return nil, err
	}

	inv.Date = inv.Date.UTC()

	if inv.VendorID != nil && vendorName.Valid {
		inv.Vendor = &invoice.Vendor{
			ID:   *inv.VendorID,
			Name: vendorName.String,
		}

		if vendorCategory.Valid {
			inv.Vendor.Category = &vendorCategory.String
		}
	}

	return &inv, nil
}

const selectInvoiceColumns = `
	i.id, i.invoice_no, i.date, i.amount, i.status, i.vendor_id, i.created_at,
	v.name AS vendor_name, v.category AS vendor_category
`

const fromInvoices = `
	FROM invoices i
	LEFT JOIN vendors v ON i.vendor_id = v.id
`

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_no, date, amount, status, vendor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.InvoiceNo,
		inv.Date,
		inv.Amount,
		inv.Status,
		inv.VendorID,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) CreateLineItem(ctx context.Context, item *invoice.LineItem) error {
	query := `
		INSERT INTO line_items (description, quantity, price, invoice_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		item.Description,
		item.Quantity,
		item.Price,
		item.InvoiceID,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("creating line item: %w", err)
	}

	return nil
}

func (s *Store) CreatePayment(ctx context.Context, p *invoice.Payment) error {
	query := `
		INSERT INTO payments (amount, date, invoice_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, p.Amount, p.Date, p.InvoiceID).Scan(&p.ID); err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + fromInvoices + ` WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if inv.LineItems, err = s.listLineItems(ctx, id); err != nil {
		return nil, err
	}

	if inv.Payments, err = s.listPayments(ctx, id); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Store) listLineItems(ctx context.Context, invoiceID uuid.UUID) ([]*invoice.LineItem, error) {
	query := `
		SELECT id, description, quantity, price, invoice_id
		FROM line_items
		WHERE invoice_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []*invoice.LineItem

	for rows.Next() {
		var item invoice.LineItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Quantity, &item.Price, &item.InvoiceID); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line item rows: %w", err)
	}

	return items, nil
}

func (s *Store) listPayments(ctx context.Context, invoiceID uuid.UUID) ([]*invoice.Payment, error) {
	query := `
		SELECT id, amount, date, invoice_id
		FROM payments
		WHERE invoice_id = $1
		ORDER BY date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*invoice.Payment

	for rows.Next() {
		var p invoice.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.Date, &p.InvoiceID); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Date = p.Date.UTC()
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

// SearchInvoices runs one COUNT over the filtered set and one paginated
// SELECT, so TotalCount always ignores Offset and Limit.
func (s *Store) SearchInvoices(ctx context.Context, filter invoice.SearchFilter) ([]*invoice.Invoice, int, error) {
	where, args := searchConditions(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+fromInvoices+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting invoices: %w", err)
	}

	query := `SELECT ` + selectInvoiceColumns + fromInvoices + where + orderBy(filter) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("searching invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*invoice.Invoice, 0, filter.Limit)

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, total, nil
}
