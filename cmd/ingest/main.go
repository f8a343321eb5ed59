// Command ingest loads an invoice feed file into the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/ingest"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/tally/internal/invoice/store"
	"github.com/MrJamesThe3rd/tally/internal/store/memory"
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

	file := flag.String("file", cfg.Ingest.File, "path to the JSON invoice feed")
	dryRun := flag.Bool("dry-run", false, "normalize into an in-memory store and persist nothing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *file, *dryRun, os.Stdout); err != nil {
		slog.Error("ingestion failed", "file", *file, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, file string, dryRun bool, out io.Writer) error {
	docs, err := ingest.LoadFeed(file)
	if err != nil {
		return err
	}

	var (
		vendors  *vendor.Service
		invoices *invoice.Service
	)

	if dryRun {
		store := memory.New()
		vendors = vendor.NewService(store)
		invoices = invoice.NewService(store)
	} else {
		db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()

		if cfg.DB.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
		}

		vendors = vendor.NewService(vendorStore.New(db))
		invoices = invoice.NewService(invoiceStore.New(db))
	}

	res, err := ingest.NewService(vendors, invoices).Ingest(ctx, docs)
	if err != nil {
		return err
	}

	printResult(out, res, dryRun)

	return nil
}

func printResult(out io.Writer, res *ingest.Result, dryRun bool) {
	mode := "ingested"
	if dryRun {
		mode = "dry run"
	}

	fmt.Fprintf(out, "%s: %d records, %d invoices, %d line items, %d payments\n",
		mode, res.Records, res.Invoices, res.LineItems, res.Payments)

	if len(res.Diagnostics) == 0 {
		return
	}

	fmt.Fprintf(out, "%d diagnostics:\n", len(res.Diagnostics))

	for _, d := range res.Diagnostics {
		fmt.Fprintf(out, "  %s\n", d)
	}
}
