package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/analytics"
	"github.com/MrJamesThe3rd/tally/internal/http/chat"
	"github.com/MrJamesThe3rd/tally/internal/http/ingest"
	"github.com/MrJamesThe3rd/tally/internal/http/invoice"
	"github.com/MrJamesThe3rd/tally/internal/http/vendor"
)

type Options struct {
	AllowedOrigins []string
	// Authenticator is optional; without it no bearer tokens are read.
	Authenticator *auth.Authenticator
}

func New(
	opts Options,
	analyticsV1 *analytics.Handler,
	invoicesV1 *invoice.Handler,
	vendorsV1 *vendor.Handler,
	ingestV1 *ingest.Handler,
	chatV1 *chat.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Authenticator != nil {
		router.Use(opts.Authenticator.Middleware)
	}

	router.Route("/api/v1", func(r chi.Router) {
		analyticsV1.Routes(r)

		r.Route("/invoices", invoicesV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			vendorsV1.Routes(r)
		})

		r.Route("/ingest", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ingestV1.Routes(r)
		})

		r.Route("/chat-with-data", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			chatV1.Routes(r)
		})
	})

	return router
}
