package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     invoice.CreateParams
		setupMock  func(m *invoice.MockRepository)
		wantStatus string
		wantErr    bool
	}

	vendorID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			params: invoice.CreateParams{
				InvoiceNo: "INV1",
				Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				Amount:    decimal.RequireFromString("150.5"),
				Status:    "Processed",
				VendorID:  &vendorID,
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						assert.Equal(t, &vendorID, inv.VendorID)
						inv.ID = uuid.New()
						return nil
					})
			},
			wantStatus: "Processed",
		},
		{
			name:   "DefaultStatus",
			params: invoice.CreateParams{InvoiceNo: "INV2"},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = uuid.New()
						return nil
					})
			},
			wantStatus: invoice.DefaultStatus,
		},
		{
			name:   "RepoError",
			params: invoice.CreateParams{InvoiceNo: "INV3"},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := invoice.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestService_AddChildren(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoiceID := uuid.New()
	repo := invoice.NewMockRepository(ctrl)

	repo.EXPECT().
		CreateLineItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *invoice.LineItem) error {
			assert.Equal(t, invoiceID, item.InvoiceID)
			item.ID = uuid.New()
			return nil
		})
	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		Return(errors.New("fk violation"))

	svc := invoice.NewService(repo)

	item, err := svc.AddLineItem(context.Background(), invoiceID, invoice.LineItemParams{Description: "Paper", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Paper", item.Description)

	p, err := svc.AddPayment(context.Background(), invoiceID, invoice.PaymentParams{})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestService_Search(t *testing.T) {
	t.Run("PassesResolvedFilter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().
			SearchInvoices(gomock.Any(), invoice.SearchFilter{
				Statuses: []string{"Processed"},
				SortBy:   invoice.SortDate,
				Desc:     true,
				Offset:   10,
				Limit:    10,
			}).
			Return([]*invoice.Invoice{{ID: uuid.New()}}, 25, nil)

		svc := invoice.NewService(repo)
		got, err := svc.Search(context.Background(), invoice.SearchParams{Role: invoice.RoleAnalyst, Page: 2, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, got.Invoices, 1)
		assert.Equal(t, 25, got.TotalCount)
	})

	t.Run("InvalidSortSkipsStore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := invoice.NewService(invoice.NewMockRepository(ctrl))
		_, err := svc.Search(context.Background(), invoice.SearchParams{SortBy: "secret"})
		assert.ErrorIs(t, err, invoice.ErrInvalidSort)
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().SearchInvoices(gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("conn refused"))

		svc := invoice.NewService(repo)
		got, err := svc.Search(context.Background(), invoice.SearchParams{})
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
