package main

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/analytics"
	analyticsStore "github.com/MrJamesThe3rd/tally/internal/analytics/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/ingest"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/tally/internal/invoice/store"
	"github.com/MrJamesThe3rd/tally/internal/vendor"
	vendorStore "github.com/MrJamesThe3rd/tally/internal/vendor/store"
)

type model struct {
	analyticsService *analytics.Service
	invoiceService   *invoice.Service
	vendorService    *vendor.Service
	ingestService    *ingest.Service
	ingestFile       string

	currentView View

	dashboardView view.DashboardModel
	invoicesView  view.InvoicesModel
	vendorsView   view.VendorsModel
	ingestView    view.IngestModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewInvoices  View = 2
	ViewVendors   View = 3
	ViewIngest    View = 4
)

func initialModel() model {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := view.DbCtx()
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	vendorSvc := vendor.NewService(vendorStore.New(db))
	invoiceSvc := invoice.NewService(invoiceStore.New(db))
	analyticsSvc := analytics.NewService(analyticsStore.New(db))
	ingestSvc := ingest.NewService(vendorSvc, invoiceSvc)

	return model{
		analyticsService: analyticsSvc,
		invoiceService:   invoiceSvc,
		vendorService:    vendorSvc,
		ingestService:    ingestSvc,
		ingestFile:       cfg.Ingest.File,
		currentView:      ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.analyticsService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewVendors
				m.vendorsView = view.NewVendorsModel(m.vendorService)

				return m, m.vendorsView.Init()
			case "4":
				m.currentView = ViewIngest
				m.ingestView = view.NewIngestModel(m.ingestService, m.ingestFile)

				return m, m.ingestView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewVendors:
		var newModel tea.Model
		newModel, cmd = m.vendorsView.Update(msg)
		m.vendorsView = newModel.(view.VendorsModel)
	case ViewIngest:
		var newModel tea.Model
		newModel, cmd = m.ingestView.Update(msg)
		m.ingestView = newModel.(view.IngestModel)
	}

	return m, cmd
}

func (m model) View() string {
	var (
		body string
		help string
	)

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally\n\n" +
				"1. Dashboard\n" +
				"2. Search Invoices\n" +
				"3. Vendors\n" +
				"4. Ingest Feed\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		body, help = m.dashboardView.View(), m.dashboardView.ShortHelp()
	case ViewInvoices:
		body, help = m.invoicesView.View(), m.invoicesView.ShortHelp()
	case ViewVendors:
		body, help = m.vendorsView.View(), m.vendorsView.ShortHelp()
	case ViewIngest:
		body, help = m.ingestView.View(), m.ingestView.ShortHelp()
	default:
		return "Unknown View"
	}

	return body + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render(help)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
