package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	CreateLineItem(ctx context.Context, item *LineItem) error
	CreatePayment(ctx context.Context, p *Payment) error

	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	SearchInvoices(ctx context.Context, filter SearchFilter) ([]*Invoice, int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	InvoiceNo string
	Date      time.Time
	Amount    decimal.Decimal
	Status    string
	VendorID  *uuid.UUID
}

type LineItemParams struct {
	Description string
	Quantity    int
	Price       decimal.Decimal
}

type PaymentParams struct {
	Amount decimal.Decimal
	Date   time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	status := params.Status
	if status == "" {
		status = DefaultStatus
	}

	inv := &Invoice{
		InvoiceNo: params.InvoiceNo,
		Date:      params.Date,
		Amount:    params.Amount,
		Status:    status,
		VendorID:  params.VendorID,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// AddLineItem attaches a line item to an invoice that already exists.
func (s *Service) AddLineItem(ctx context.Context, invoiceID uuid.UUID, params LineItemParams) (*LineItem, error) {
	item := &LineItem{
		Description: params.Description,
		Quantity:    params.Quantity,
		Price:       params.Price,
		InvoiceID:   invoiceID,
	}
	if err := s.repo.CreateLineItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// AddPayment attaches a payment to an invoice that already exists.
func (s *Service) AddPayment(ctx context.Context, invoiceID uuid.UUID, params PaymentParams) (*Payment, error) {
	p := &Payment{
		Amount:    params.Amount,
		Date:      params.Date,
		InvoiceID: invoiceID,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	filter, err := params.Filter()
	if err != nil {
		return nil, err
	}

	invoices, total, err := s.repo.SearchInvoices(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}

	return &SearchResult{Invoices: invoices, TotalCount: total}, nil
}
