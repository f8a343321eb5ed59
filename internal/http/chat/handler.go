package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	"github.com/MrJamesThe3rd/tally/internal/nlsql"
)

type Handler struct {
	client *nlsql.Client
}

func NewHandler(client *nlsql.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.ask)
}

type askRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

type askResponse struct {
	Query  string           `json:"query"`
	SQL    string           `json:"sql"`
	Result []map[string]any `json:"result"`
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.client.Ask(r.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, nlsql.ErrEmptyQuery):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, nlsql.ErrUpstreamUnavailable):
			slog.Error("nl-to-sql service unreachable", "error", err)
			httpx.Error(w, http.StatusBadGateway, nlsql.ErrUpstreamUnavailable.Error())
		default:
			slog.Warn("nl-to-sql service failed", "error", err)
			httpx.Error(w, http.StatusBadGateway, err.Error())
		}

		return
	}

	result := answer.Result
	if result == nil {
		result = []map[string]any{}
	}

	httpx.JSON(w, http.StatusOK, askResponse{Query: answer.Query, SQL: answer.SQL, Result: result})
}
