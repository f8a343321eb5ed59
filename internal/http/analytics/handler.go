package analytics

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
)

var errInvalidDate = errors.New("invalid date")

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/invoice-trends", h.invoiceTrends)
	r.Get("/vendors/top10", h.topVendors)
	r.Get("/category-spend", h.categorySpend)
	r.Get("/cash-outflow", h.cashOutflow)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toStatsResponse(stats))
}

func (h *Handler) invoiceTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.svc.InvoiceTrends(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTrendResponseList(trends))
}

func (h *Handler) topVendors(w http.ResponseWriter, r *http.Request) {
	limit := analytics.DefaultTopVendors

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	vendors, err := h.svc.TopVendors(r.Context(), limit)
	if err != nil {
		internalError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toVendorSpendResponseList(vendors))
}

func (h *Handler) categorySpend(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.CategorySpend(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toCategorySpendResponseList(categories))
}

func (h *Handler) cashOutflow(w http.ResponseWriter, r *http.Request) {
	start, err := parseBound(r.URL.Query().Get("startDate"), false)
	if err != nil {
		http.Error(w, "invalid startDate", http.StatusBadRequest)
		return
	}

	end, err := parseBound(r.URL.Query().Get("endDate"), true)
	if err != nil {
		http.Error(w, "invalid endDate", http.StatusBadRequest)
		return
	}

	outflow, err := h.svc.CashOutflow(r.Context(), start, end)
	if err != nil {
		internalError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toOutflowResponseList(outflow))
}

// parseBound accepts RFC 3339 or a bare date. A bare end date covers the
// whole day.
func parseBound(s string, end bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return new(t.UTC()), nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, errInvalidDate
	}

	if end {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return &t, nil
}

func internalError(w http.ResponseWriter, err error) {
	slog.Error("analytics query failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
