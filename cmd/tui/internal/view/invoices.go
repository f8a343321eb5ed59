package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateFilter
	invoicesStateDetail
)

type InvoicesModel struct {
	CommonModel
	svc *invoice.Service

	state  invoicesState
	table  table.Model
	form   *huh.Form
	params invoice.SearchParams

	invoices []*invoice.Invoice
	total    int
	detail   *invoice.Invoice

	loading bool
	err     error
	status  string

	// Form bindings
	formSearch     string
	formStatus     string
	formVendorName string
	formSortBy     string
	formSortOrder  string
	formRole       string
}

func NewInvoicesModel(svc *invoice.Service) InvoicesModel {
	t := newTable([]table.Column{
		{Title: "Invoice", Width: 16},
		{Title: "Date", Width: 12},
		{Title: "Vendor", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Amount", Width: 14},
	}, 15)

	return InvoicesModel{
		svc:     svc,
		table:   t,
		params:  invoice.SearchParams{Page: invoice.DefaultPage, Limit: invoice.DefaultLimit},
		loading: true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	switch m.state {
	case invoicesStateFilter:
		return "Navigate form | Esc: cancel"
	case invoicesStateDetail:
		return "Esc: close"
	}

	return "Esc: back | f: filter | n/p: next/prev page | Enter: details | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.searchCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.invoices = msg.result.Invoices
		m.total = msg.result.TotalCount
		m.refreshTable()

		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading invoice: %v", msg.err)
			return m, nil
		}

		m.detail = msg.invoice
		m.state = invoicesStateDetail

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateFilter:
		return m.updateFilter(msg)
	case invoicesStateDetail:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.detail = nil
		}

		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.searchCmd()
		case "f":
			return m.enterFilterMode()
		case "n":
			if m.params.Page < pageCount(m.total, m.params.Limit) {
				m.params.Page++
				m.loading = true

				return m, m.searchCmd()
			}

			return m, nil
		case "p":
			if m.params.Page > 1 {
				m.params.Page--
				m.loading = true

				return m, m.searchCmd()
			}

			return m, nil
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.invoices) {
				return m, nil
			}

			return m, m.detailCmd(m.invoices[idx])
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterFilterMode() (tea.Model, tea.Cmd) {
	m.formSearch = m.params.Search
	m.formStatus = m.params.Status
	m.formVendorName = m.params.VendorName
	m.formSortBy = m.params.SortBy
	m.formSortOrder = m.params.SortOrder
	m.formRole = string(m.params.Role)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("search").Title("Invoice number contains").Value(&m.formSearch),
			huh.NewInput().Key("status").Title("Status").Value(&m.formStatus),
			huh.NewInput().Key("vendorName").Title("Vendor name contains").Value(&m.formVendorName),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("sortBy").
				Title("Sort by").
				Options(
					huh.NewOption("Date (default)", ""),
					huh.NewOption("Invoice number", string(invoice.SortInvoiceNo)),
					huh.NewOption("Amount", string(invoice.SortAmount)),
					huh.NewOption("Status", string(invoice.SortStatus)),
					huh.NewOption("Vendor", string(invoice.SortVendorName)),
				).
				Value(&m.formSortBy),
			huh.NewSelect[string]().
				Key("sortOrder").
				Title("Order").
				Options(huh.NewOption("Ascending", "asc"), huh.NewOption("Descending", "desc")).
				Value(&m.formSortOrder),
			huh.NewSelect[string]().
				Key("role").
				Title("View as").
				Options(
					huh.NewOption("Everyone", ""),
					huh.NewOption("Analyst", string(invoice.RoleAnalyst)),
					huh.NewOption("Intern", string(invoice.RoleIntern)),
				).
				Value(&m.formRole),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateFilter
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.params = invoice.SearchParams{
		Search:     strings.TrimSpace(m.form.GetString("search")),
		Status:     strings.TrimSpace(m.form.GetString("status")),
		VendorName: strings.TrimSpace(m.form.GetString("vendorName")),
		SortBy:     m.form.GetString("sortBy"),
		SortOrder:  m.form.GetString("sortOrder"),
		Role:       invoice.Role(m.form.GetString("role")),
		Page:       invoice.DefaultPage,
		Limit:      m.params.Limit,
	}

	m.state = invoicesStateBrowse
	m.form = nil
	m.loading = true
	m.table.Focus()

	return m, m.searchCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("Page %s of %d | %d invoices | %s",
		activeStyle(fmt.Sprintf("%d", m.params.Page)),
		pageCount(m.total, m.params.Limit),
		m.total,
		m.filterSummary(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBox(m.table),
	)

	switch {
	case m.state == invoicesStateFilter && m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Filter Invoices", m.form.View()))
	case m.state == invoicesStateDetail && m.detail != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Invoice "+m.detail.InvoiceNo, detailBody(m.detail)))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m InvoicesModel) filterSummary() string {
	var parts []string

	if m.params.Search != "" {
		parts = append(parts, "no~"+m.params.Search)
	}

	if m.params.Status != "" {
		parts = append(parts, "status="+m.params.Status)
	}

	if m.params.VendorName != "" {
		parts = append(parts, "vendor~"+m.params.VendorName)
	}

	if m.params.Role != "" {
		parts = append(parts, "as "+string(m.params.Role))
	}

	if len(parts) == 0 {
		return "no filters"
	}

	return strings.Join(parts, ", ")
}

func detailBody(inv *invoice.Invoice) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vendor:  %s\nDate:    %s\nStatus:  %s\nAmount:  %s\n",
		inv.VendorName(), FormatDate(inv.Date), inv.Status, FormatAmount(inv.Amount))

	if len(inv.LineItems) > 0 {
		b.WriteString("\nLine items\n")

		for _, item := range inv.LineItems {
			fmt.Fprintf(&b, "  %3d x %-20s %10s\n", item.Quantity, item.Description, FormatAmount(item.Price))
		}
	}

	if len(inv.Payments) > 0 {
		b.WriteString("\nPayments\n")

		for _, p := range inv.Payments {
			fmt.Fprintf(&b, "  %s %10s\n", FormatDate(p.Date), FormatAmount(p.Amount))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.InvoiceNo,
			FormatDate(inv.Date),
			inv.VendorName(),
			inv.Status,
			FormatAmount(inv.Amount),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func pageCount(total, limit int) int {
	if limit < 1 || total <= limit {
		return 1
	}

	return (total + limit - 1) / limit
}

// Messages

type searchMsg struct {
	result *invoice.SearchResult
	err    error
}

func (m InvoicesModel) searchCmd() tea.Cmd {
	params := m.params

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.svc.Search(ctx, params)

		return searchMsg{result: res, err: err}
	}
}

type detailMsg struct {
	invoice *invoice.Invoice
	err     error
}

func (m InvoicesModel) detailCmd(inv *invoice.Invoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		full, err := m.svc.Get(ctx, inv.ID)

		return detailMsg{invoice: full, err: err}
	}
}
