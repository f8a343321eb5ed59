package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
	analyticsStore "github.com/MrJamesThe3rd/tally/internal/analytics/store"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/tally/internal/http/analytics"
	chatHandler "github.com/MrJamesThe3rd/tally/internal/http/chat"
	ingestHandler "github.com/MrJamesThe3rd/tally/internal/http/ingest"
	invoiceHandler "github.com/MrJamesThe3rd/tally/internal/http/invoice"
	vendorHandler "github.com/MrJamesThe3rd/tally/internal/http/vendor"
	"github.com/MrJamesThe3rd/tally/internal/ingest"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/tally/internal/invoice/store"
	"github.com/MrJamesThe3rd/tally/internal/nlsql"
	"github.com/MrJamesThe3rd/tally/internal/vendor"
	vendorStore "github.com/MrJamesThe3rd/tally/internal/vendor/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var (
		vendorService    = vendor.NewService(vendorStore.New(db))
		invoiceService   = invoice.NewService(invoiceStore.New(db))
		analyticsService = analytics.NewService(analyticsStore.New(db))
		ingestService    = ingest.NewService(vendorService, invoiceService)
		nlsqlClient      = nlsql.NewClient(cfg.Vanna.BaseURL, cfg.Vanna.Timeout)
	)

	opts := tallyHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins}
	roleOf := invoiceHandler.QueryRole

	if cfg.Auth.JWTSecret != "" {
		opts.Authenticator = auth.New(cfg.Auth.JWTSecret)
		roleOf = invoiceHandler.TokenRole
	}

	var (
		analyticsH = analyticsHandler.NewHandler(analyticsService)
		invoiceH   = invoiceHandler.NewHandler(invoiceService, roleOf)
		vendorH    = vendorHandler.NewHandler(vendorService)
		ingestH    = ingestHandler.NewHandler(ingestService)
		chatH      = chatHandler.NewHandler(nlsqlClient)
	)

	router := tallyHttp.New(opts, analyticsH, invoiceH, vendorH, ingestH, chatH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		// Chat requests wait on the NL-to-SQL service.
		WriteTimeout: cfg.Server.Timeout + cfg.Vanna.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
