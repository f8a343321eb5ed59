package invoice

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/coerce"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

// RoleFunc picks the caller's role for search scoping.
type RoleFunc func(r *http.Request) invoice.Role

// QueryRole reads the role query parameter.
func QueryRole(r *http.Request) invoice.Role {
	return invoice.Role(r.URL.Query().Get("role"))
}

// TokenRole reads the role that auth.Middleware stored from the bearer token.
func TokenRole(r *http.Request) invoice.Role {
	return invoice.Role(auth.Role(r.Context()))
}

type Handler struct {
	svc    *invoice.Service
	roleOf RoleFunc
}

func NewHandler(svc *invoice.Service, roleOf RoleFunc) *Handler {
	return &Handler{svc: svc, roleOf: roleOf}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.search)
	r.Get("/{id}", h.get)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.svc.Search(r.Context(), invoice.SearchParams{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		VendorName: q.Get("vendorName"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
		Page:       coerce.ToInteger(q.Get("page"), invoice.DefaultPage),
		Limit:      coerce.ToInteger(q.Get("limit"), invoice.DefaultLimit),
		Role:       h.roleOf(r),
	})
	if err != nil {
		if errors.Is(err, invoice.ErrInvalidSort) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to search invoices", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusOK, searchResponse{
		Invoices:   toResponseList(res.Invoices),
		TotalCount: res.TotalCount,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to get invoice", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(inv))
}
