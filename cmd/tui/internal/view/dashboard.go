package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
)

type DashboardModel struct {
	CommonModel
	svc *analytics.Service

	period  Period
	vendors table.Model

	stats      *analytics.Stats
	trends     []analytics.TrendPoint
	categories []analytics.CategorySpend
	outflow    []analytics.OutflowPoint

	loading bool
	err     error
}

func NewDashboardModel(svc *analytics.Service) DashboardModel {
	return DashboardModel{
		svc: svc,
		vendors: newTable([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Vendor", Width: 28},
			{Title: "Category", Width: 16},
			{Title: "Total", Width: 14},
		}, analytics.DefaultTopVendors),
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | p: outflow period | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.stats = msg.stats
			m.trends = msg.trends
			m.categories = msg.categories
			m.outflow = msg.outflow
			m.setVendors(msg.vendors)
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.period = m.period.Next()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.vendors, cmd = m.vendors.Update(msg)

	return m, cmd
}

func (m *DashboardModel) setVendors(vendors []analytics.VendorSpend) {
	rows := make([]table.Row, 0, len(vendors))
	for i, v := range vendors {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			v.Name,
			FormatCategory(v.Category),
			FormatAmount(v.TotalAmount),
		})
	}

	m.vendors.SetRows(rows)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	stats := fmt.Sprintf(
		"Total spend:     %s\nInvoices:        %d\nDocuments:       %d\nAverage invoice: %s",
		FormatAmount(m.stats.TotalSpend),
		m.stats.TotalInvoices,
		m.stats.DocumentsUploaded,
		FormatAmount(m.stats.AverageInvoiceValue),
	)

	var trends strings.Builder
	for _, t := range m.trends {
		fmt.Fprintf(&trends, "%s  %4d  %14s\n", t.Month, t.InvoiceCount, FormatAmount(t.TotalAmount))
	}

	var categories strings.Builder
	for _, c := range m.categories {
		fmt.Fprintf(&categories, "%-18s %14s\n", c.Category, FormatAmount(c.TotalAmount))
	}

	var outflow strings.Builder
	for _, o := range m.outflow {
		fmt.Fprintf(&outflow, "%s  %14s\n", o.Month, FormatAmount(o.Outflow))
	}

	if outflow.Len() == 0 {
		outflow.WriteString("No outflow in this period.")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Overview", stats),
		panel("Top Vendors", tableBox(m.vendors)),
	)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Monthly Trend", strings.TrimRight(trends.String(), "\n")),
		panel("Spend by Category", strings.TrimRight(categories.String(), "\n")),
		panel("Cash Outflow ["+activeStyle(m.period.String())+"]", strings.TrimRight(outflow.String(), "\n")),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
}

type dashboardMsg struct {
	stats      *analytics.Stats
	vendors    []analytics.VendorSpend
	trends     []analytics.TrendPoint
	categories []analytics.CategorySpend
	outflow    []analytics.OutflowPoint
	err        error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			msg dashboardMsg
			err error
		)

		if msg.stats, err = m.svc.Stats(ctx); err != nil {
			return dashboardMsg{err: err}
		}

		if msg.vendors, err = m.svc.TopVendors(ctx, analytics.DefaultTopVendors); err != nil {
			return dashboardMsg{err: err}
		}

		if msg.trends, err = m.svc.InvoiceTrends(ctx); err != nil {
			return dashboardMsg{err: err}
		}

		if msg.categories, err = m.svc.CategorySpend(ctx); err != nil {
			return dashboardMsg{err: err}
		}

		start, end := period.Range(time.Now())
		if msg.outflow, err = m.svc.CashOutflow(ctx, start, end); err != nil {
			return dashboardMsg{err: err}
		}

		return msg
	}
}
