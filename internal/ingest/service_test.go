package ingest

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
	"github.com/MrJamesThe3rd/tally/internal/vendor"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(vendors VendorResolver, invoices InvoiceWriter) *Service {
	svc := NewService(vendors, invoices)
	svc.now = func() time.Time { return fixedNow }

	return svc
}

func flatDoc(no string) Document {
	return Document{
		"invoiceNo": no,
		"amount":    "10",
		"vendor":    map[string]any{"name": "Acme"},
		"lineItems": []any{map[string]any{"description": "Pens", "quantity": "2", "price": "1.5"}},
		"payments":  []any{map[string]any{"amount": "10", "date": "2024-01-02"}},
	}
}

func TestService_Ingest(t *testing.T) {
	acme := &vendor.Vendor{ID: uuid.New(), Name: "Acme"}
	created := &invoice.Invoice{ID: uuid.New()}
	dbErr := errors.New("db down")

	type testCase struct {
		name      string
		docs      []Document
		setupMock func(v *MockVendorResolver, w *MockInvoiceWriter)
		want      Result
		wantKinds []Kind
	}

	tests := []testCase{
		{
			name: "Success",
			docs: []Document{flatDoc("INV-1")},
			setupMock: func(v *MockVendorResolver, w *MockInvoiceWriter) {
				v.EXPECT().Resolve(gomock.Any(), "Acme", gomock.Nil()).Return(acme)
				w.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p invoice.CreateParams) (*invoice.Invoice, error) {
						assert.Equal(t, "INV-1", p.InvoiceNo)
						require.NotNil(t, p.VendorID)
						assert.Equal(t, acme.ID, *p.VendorID)

						return created, nil
					})
				w.EXPECT().AddLineItem(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.LineItem{}, nil)
				w.EXPECT().AddPayment(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.Payment{}, nil)
			},
			want: Result{Records: 1, Invoices: 1, LineItems: 1, Payments: 1},
		},
		{
			name: "UnresolvedVendorStoresInvoiceWithoutVendor",
			docs: []Document{flatDoc("INV-1")},
			setupMock: func(v *MockVendorResolver, w *MockInvoiceWriter) {
				v.EXPECT().Resolve(gomock.Any(), "Acme", gomock.Nil()).Return(nil)
				w.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p invoice.CreateParams) (*invoice.Invoice, error) {
						assert.Nil(t, p.VendorID)

						return created, nil
					})
				w.EXPECT().AddLineItem(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.LineItem{}, nil)
				w.EXPECT().AddPayment(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.Payment{}, nil)
			},
			want:      Result{Records: 1, Invoices: 1, LineItems: 1, Payments: 1},
			wantKinds: []Kind{KindVendorResolution},
		},
		{
			name: "InvoiceFailureSkipsChildrenAndContinues",
			docs: []Document{flatDoc("INV-1"), flatDoc("INV-2")},
			setupMock: func(v *MockVendorResolver, w *MockInvoiceWriter) {
				v.EXPECT().Resolve(gomock.Any(), "Acme", gomock.Nil()).Return(acme).Times(2)
				gomock.InOrder(
					w.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, dbErr),
					w.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil),
				)
				w.EXPECT().AddLineItem(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.LineItem{}, nil)
				w.EXPECT().AddPayment(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.Payment{}, nil)
			},
			want:      Result{Records: 2, Invoices: 1, LineItems: 1, Payments: 1},
			wantKinds: []Kind{KindInvoiceCreation},
		},
		{
			name: "ChildFailureKeepsSiblings",
			docs: []Document{flatDoc("INV-1")},
			setupMock: func(v *MockVendorResolver, w *MockInvoiceWriter) {
				v.EXPECT().Resolve(gomock.Any(), "Acme", gomock.Nil()).Return(acme)
				w.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
				w.EXPECT().AddLineItem(gomock.Any(), created.ID, gomock.Any()).Return(nil, dbErr)
				w.EXPECT().AddPayment(gomock.Any(), created.ID, gomock.Any()).Return(&invoice.Payment{}, nil)
			},
			want:      Result{Records: 1, Invoices: 1, Payments: 1},
			wantKinds: []Kind{KindChildRecord},
		},
		{
			name: "GroupedRejectsNonObjectEntries",
			docs: []Document{{
				"name":     "Acme",
				"invoices": []any{"broken", map[string]any{"invoiceNo": "A-1"}},
			}},
			setupMock: func(v *MockVendorResolver, w *MockInvoiceWriter) {
				v.EXPECT().Resolve(gomock.Any(), "Acme", gomock.Nil()).Return(acme)
				w.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
			},
			want:      Result{Records: 1, Invoices: 1},
			wantKinds: []Kind{KindInvoiceCreation},
		},
		{
			name: "EmptyFeed",
			want: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			vendors := NewMockVendorResolver(ctrl)
			invoices := NewMockInvoiceWriter(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(vendors, invoices)
			}

			got, err := newTestService(vendors, invoices).Ingest(context.Background(), tt.docs)
			require.NoError(t, err)

			assert.Equal(t, tt.want.Records, got.Records)
			assert.Equal(t, tt.want.Invoices, got.Invoices)
			assert.Equal(t, tt.want.LineItems, got.LineItems)
			assert.Equal(t, tt.want.Payments, got.Payments)

			var kinds []Kind
			for _, d := range got.Diagnostics {
				kinds = append(kinds, d.Kind)
			}

			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestService_Ingest_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(NewMockVendorResolver(ctrl), NewMockInvoiceWriter(ctrl))

	got, err := svc.Ingest(ctx, []Document{flatDoc("INV-1")})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, got.Records)
}

func TestService_Ingest_PassesNormalizedValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vendors := NewMockVendorResolver(ctrl)
	invoices := NewMockInvoiceWriter(ctrl)
	id := uuid.New()

	vendors.EXPECT().Resolve(gomock.Any(), UnknownVendor, gomock.Nil()).Return(nil)
	invoices.EXPECT().Create(gomock.Any(), invoice.CreateParams{
		InvoiceNo: "INV-1741608000000",
		Date:      fixedNow,
		Amount:    decimal.Zero,
		Status:    invoice.DefaultStatus,
	}).Return(&invoice.Invoice{ID: id}, nil)

	res, err := newTestService(vendors, invoices).Ingest(context.Background(), []Document{{}})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Invoices)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, KindVendorResolution, res.Diagnostics[0].Kind)
}
