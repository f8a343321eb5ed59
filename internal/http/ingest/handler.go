package ingest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	"github.com/MrJamesThe3rd/tally/internal/ingest"
)

type Handler struct {
	svc *ingest.Service
}

func NewHandler(svc *ingest.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
}

type diagnosticResponse struct {
	Record  int    `json:"record"`
	Invoice int    `json:"invoice"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

type resultResponse struct {
	Records     int                  `json:"records"`
	Invoices    int                  `json:"invoices"`
	LineItems   int                  `json:"lineItems"`
	Payments    int                  `json:"payments"`
	Diagnostics []diagnosticResponse `json:"diagnostics"`
}

func toResultResponse(res *ingest.Result) resultResponse {
	out := resultResponse{
		Records:     res.Records,
		Invoices:    res.Invoices,
		LineItems:   res.LineItems,
		Payments:    res.Payments,
		Diagnostics: make([]diagnosticResponse, 0, len(res.Diagnostics)),
	}

	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticResponse{
			Record:  d.Record,
			Invoice: d.Invoice,
			Kind:    string(d.Kind),
			Error:   d.Err.Error(),
		})
	}

	return out
}

// create accepts the same JSON feed document the ingest command reads from
// disk.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)

	docs, err := ingest.DecodeFeed(r.Body)
	if err != nil {
		if errors.Is(err, ingest.ErrMalformedInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to read feed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	res, err := h.svc.Ingest(r.Context(), docs)
	if err != nil {
		slog.Error("ingestion aborted", "error", err, "records", res.Records)
		http.Error(w, "ingestion aborted", http.StatusInternalServerError)

		return
	}

	slog.Info("ingested feed",
		"records", res.Records,
		"invoices", res.Invoices,
		"diagnostics", len(res.Diagnostics),
	)

	httpx.JSON(w, http.StatusOK, toResultResponse(res))
}
