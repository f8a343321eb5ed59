package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/tally/internal/http/analytics"
	chatHandler "github.com/MrJamesThe3rd/tally/internal/http/chat"
	ingestHandler "github.com/MrJamesThe3rd/tally/internal/http/ingest"
	invoiceHandler "github.com/MrJamesThe3rd/tally/internal/http/invoice"
	vendorHandler "github.com/MrJamesThe3rd/tally/internal/http/vendor"
	"github.com/MrJamesThe3rd/tally/internal/ingest"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	"github.com/MrJamesThe3rd/tally/internal/nlsql"
	"github.com/MrJamesThe3rd/tally/internal/store/memory"
	"github.com/MrJamesThe3rd/tally/internal/vendor"
)

const feed = `[
	{"invoiceNo": "INV-1", "date": "2024-03-15", "amount": 100, "status": "Processed",
	 "vendor": {"name": "Vendor One", "category": "Office"}},
	{"invoiceNo": "INV-2", "date": "2024-03-02", "amount": 50, "status": "Pending",
	 "vendor": {"name": "Vendor One"}},
	{"invoiceNo": "INV-3", "date": "2024-05-10", "amount": -250, "status": "Processed",
	 "vendor": {"name": "Acme"}}
]`

type fixture struct {
	server *httptest.Server
	auth   *auth.Authenticator
}

func newFixture(t *testing.T, upstream http.HandlerFunc, withAuth bool) *fixture {
	t.Helper()

	store := memory.New()

	var (
		vendorService    = vendor.NewService(store)
		invoiceService   = invoice.NewService(store)
		analyticsService = analytics.NewService(store)
		ingestService    = ingest.NewService(vendorService, invoiceService)
	)

	if upstream == nil {
		upstream = func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"query": "q", "sql": "SELECT 1", "result": [{"n": 1}]}`))
		}
	}

	nl := httptest.NewServer(upstream)
	t.Cleanup(nl.Close)

	opts := tallyHttp.Options{AllowedOrigins: []string{"*"}}
	roleOf := invoiceHandler.QueryRole

	f := &fixture{}
	if withAuth {
		f.auth = auth.New("secret")
		opts.Authenticator = f.auth
		roleOf = invoiceHandler.TokenRole
	}

	router := tallyHttp.New(opts,
		analyticsHandler.NewHandler(analyticsService),
		invoiceHandler.NewHandler(invoiceService, roleOf),
		vendorHandler.NewHandler(vendorService),
		ingestHandler.NewHandler(ingestService),
		chatHandler.NewHandler(nlsql.NewClient(nl.URL, time.Second)),
	)

	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)

	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, header http.Header) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf strings.Builder
	_, err = io.Copy(&buf, resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, []byte(buf.String())
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()

	status, body := f.do(t, http.MethodPost, "/api/v1/ingest", feed, nil)
	require.Equal(t, http.StatusOK, status, string(body))
}

func TestRouter_Analytics(t *testing.T) {
	f := newFixture(t, nil, false)
	f.seed(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "InvoiceTrends",
			path: "/api/v1/invoice-trends",
			want: `[{"month": "2024-03", "invoiceCount": 2, "totalAmount": 150}, {"month": "2024-05", "invoiceCount": 1, "totalAmount": -250}]`,
		},
		{
			name: "CategorySpend",
			path: "/api/v1/category-spend",
			want: `[{"category": "Office", "totalAmount": 150}, {"category": "Uncategorized", "totalAmount": -250}]`,
		},
		{
			name: "CashOutflow",
			path: "/api/v1/cash-outflow?startDate=2024-05-01&endDate=2024-05-10",
			want: `[{"month": "2024-05", "outflow": 250}]`,
		},
		{
			name: "CashOutflowExcluded",
			path: "/api/v1/cash-outflow?endDate=2024-05-09",
			want: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := f.do(t, http.MethodGet, tt.path, "", nil)

			require.Equal(t, http.StatusOK, status, string(body))
			assert.JSONEq(t, tt.want, string(body))
		})
	}

	t.Run("Stats", func(t *testing.T) {
		status, body := f.do(t, http.MethodGet, "/api/v1/stats", "", nil)
		require.Equal(t, http.StatusOK, status)

		var got struct {
			TotalSpend          float64 `json:"totalSpend"`
			TotalInvoices       int     `json:"totalInvoices"`
			DocumentsUploaded   int     `json:"documentsUploaded"`
			AverageInvoiceValue float64 `json:"averageInvoiceValue"`
		}
		require.NoError(t, json.Unmarshal(body, &got))

		assert.Equal(t, float64(-100), got.TotalSpend)
		assert.Equal(t, 3, got.TotalInvoices)
		assert.Equal(t, 3, got.DocumentsUploaded)
		assert.InDelta(t, -33.33, got.AverageInvoiceValue, 0.01)
	})

	t.Run("TopVendors", func(t *testing.T) {
		status, body := f.do(t, http.MethodGet, "/api/v1/vendors/top10?limit=1", "", nil)
		require.Equal(t, http.StatusOK, status)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Vendor One", got[0]["name"])
		assert.Equal(t, float64(150), got[0]["totalAmount"])
	})

	t.Run("BadDate", func(t *testing.T) {
		status, _ := f.do(t, http.MethodGet, "/api/v1/cash-outflow?startDate=yesterday", "", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

type searchBody struct {
	Invoices []struct {
		ID        string `json:"id"`
		InvoiceNo string `json:"invoiceNo"`
	} `json:"invoices"`
	TotalCount int `json:"totalCount"`
}

func (s searchBody) numbers() []string {
	var out []string
	for _, inv := range s.Invoices {
		out = append(out, inv.InvoiceNo)
	}

	return out
}

func TestRouter_Invoices(t *testing.T) {
	f := newFixture(t, nil, false)
	f.seed(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		want       []string
	}{
		{name: "DefaultDateDesc", query: "", wantStatus: http.StatusOK, want: []string{"INV-3", "INV-1", "INV-2"}},
		{name: "AnalystRole", query: "?role=Analyst&sortBy=invoiceNo", wantStatus: http.StatusOK, want: []string{"INV-1", "INV-3"}},
		{name: "InternRole", query: "?role=Intern&sortBy=invoiceNo", wantStatus: http.StatusOK, want: []string{"INV-1", "INV-2"}},
		{name: "AmountDesc", query: "?sortBy=amount&sortOrder=desc&limit=1", wantStatus: http.StatusOK, want: []string{"INV-1"}},
		{name: "Search", query: "?search=inv-2", wantStatus: http.StatusOK, want: []string{"INV-2"}},
		{name: "InvalidSort", query: "?sortBy=secret", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := f.do(t, http.MethodGet, "/api/v1/invoices"+tt.query, "", nil)
			require.Equal(t, tt.wantStatus, status, string(body))

			if tt.wantStatus != http.StatusOK {
				return
			}

			var got searchBody
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.want, got.numbers())
		})
	}

	t.Run("HugePage", func(t *testing.T) {
		status, body := f.do(t, http.MethodGet, "/api/v1/invoices?page=9223372036854775807&limit=20", "", nil)
		require.Equal(t, http.StatusOK, status, string(body))

		var got searchBody
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Empty(t, got.Invoices)
		assert.Equal(t, 3, got.TotalCount)
	})

	t.Run("Get", func(t *testing.T) {
		_, body := f.do(t, http.MethodGet, "/api/v1/invoices?search=INV-1", "", nil)

		var found searchBody
		require.NoError(t, json.Unmarshal(body, &found))
		require.Len(t, found.Invoices, 1)

		status, body := f.do(t, http.MethodGet, "/api/v1/invoices/"+found.Invoices[0].ID, "", nil)
		require.Equal(t, http.StatusOK, status)

		var inv map[string]any
		require.NoError(t, json.Unmarshal(body, &inv))
		assert.Equal(t, "INV-1", inv["invoiceNo"])
		assert.Equal(t, "Vendor One", inv["vendor"].(map[string]any)["name"])

		status, _ = f.do(t, http.MethodGet, "/api/v1/invoices/00000000-0000-0000-0000-000000000000", "", nil)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = f.do(t, http.MethodGet, "/api/v1/invoices/nope", "", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestRouter_InvoicesTokenRole(t *testing.T) {
	f := newFixture(t, nil, true)
	f.seed(t)

	token, err := f.auth.Sign(string(invoice.RoleAnalyst), time.Hour)
	require.NoError(t, err)

	t.Run("TokenRoleApplies", func(t *testing.T) {
		status, body := f.do(t, http.MethodGet, "/api/v1/invoices?role=Intern", "",
			http.Header{"Authorization": {"Bearer " + token}})
		require.Equal(t, http.StatusOK, status)

		var got searchBody
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, 2, got.TotalCount, "query role is ignored once tokens are enabled")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		status, _ := f.do(t, http.MethodGet, "/api/v1/invoices", "",
			http.Header{"Authorization": {"Bearer junk"}})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestRouter_Vendors(t *testing.T) {
	f := newFixture(t, nil, false)
	f.seed(t)

	status, body := f.do(t, http.MethodGet, "/api/v1/vendors", "", nil)
	require.Equal(t, http.StatusOK, status)

	var vendors []struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Category *string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(body, &vendors))
	require.Len(t, vendors, 2)
	assert.Equal(t, "Vendor One", vendors[0].Name)
	require.NotNil(t, vendors[0].Category)
	assert.Equal(t, "Office", *vendors[0].Category)

	path := "/api/v1/vendors/" + vendors[1].ID + "/category"

	status, body = f.do(t, http.MethodPut, path, `{"category": "Travel"}`, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"category":"Travel"`)

	status, body = f.do(t, http.MethodPut, path, `{"category": null}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"category":null`)

	status, _ = f.do(t, http.MethodPut, "/api/v1/vendors/00000000-0000-0000-0000-000000000000/category", `{"category": "x"}`, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/vendors/"+vendors[0].ID, "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_Ingest(t *testing.T) {
	f := newFixture(t, nil, false)

	t.Run("Diagnostics", func(t *testing.T) {
		status, body := f.do(t, http.MethodPost, "/api/v1/ingest",
			`{"name": "Acme", "invoices": [{"invoiceNo": "A-1"}, 7]}`, nil)
		require.Equal(t, http.StatusOK, status)

		var got struct {
			Records     int `json:"records"`
			Invoices    int `json:"invoices"`
			Diagnostics []struct {
				Invoice int    `json:"invoice"`
				Kind    string `json:"kind"`
			} `json:"diagnostics"`
		}
		require.NoError(t, json.Unmarshal(body, &got))

		assert.Equal(t, 1, got.Records)
		assert.Equal(t, 1, got.Invoices)
		require.Len(t, got.Diagnostics, 1)
		assert.Equal(t, 1, got.Diagnostics[0].Invoice)
		assert.Equal(t, string(ingest.KindInvoiceCreation), got.Diagnostics[0].Kind)
	})

	t.Run("Malformed", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/api/v1/ingest", `{"oops"`, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestRouter_Chat(t *testing.T) {
	t.Run("Forwards", func(t *testing.T) {
		f := newFixture(t, nil, false)

		status, body := f.do(t, http.MethodPost, "/api/v1/chat-with-data", `{"query": "how many?"}`, nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"query": "q", "sql": "SELECT 1", "result": [{"n": 1}]}`, string(body))
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		f := newFixture(t, nil, false)

		status, _ := f.do(t, http.MethodPost, "/api/v1/chat-with-data", `{"query": ""}`, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"error": "relation does not exist"}`))
		}, false)

		status, body := f.do(t, http.MethodPost, "/api/v1/chat-with-data", `{"query": "q"}`, nil)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Contains(t, string(body), "relation does not exist")
	})
}
