package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/vendor"
)

type vendorsState int

const (
	vendorsStateBrowse vendorsState = iota
	vendorsStateEdit
)

type VendorsModel struct {
	CommonModel
	svc *vendor.Service

	state   vendorsState
	table   table.Model
	vendors []*vendor.Vendor
	form    *huh.Form

	loading bool
	err     error
	status  string

	formCategory string
}

func NewVendorsModel(svc *vendor.Service) VendorsModel {
	return VendorsModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Vendor", Width: 32},
			{Title: "Category", Width: 20},
			{Title: "Updated", Width: 12},
		}, 15),
		loading: true,
	}
}

func (m VendorsModel) Title() string { return "Vendors" }

func (m VendorsModel) ShortHelp() string {
	if m.state == vendorsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit category | r: refresh"
}

func (m VendorsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m VendorsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadVendorsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.vendors = msg.vendors
		m.refreshTable()

		return m, nil

	case vendorSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = vendorsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == vendorsStateEdit {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m VendorsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.vendors) {
		return m, nil
	}

	m.formCategory = ""
	if c := m.vendors[idx].Category; c != nil {
		m.formCategory = *c
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Description("Leave empty to clear").
				Value(&m.formCategory),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = vendorsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m VendorsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = vendorsStateBrowse
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

	return m, m.saveCmd()
}

func (m VendorsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading vendors...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	content := tableBox(m.table)

	if m.state == vendorsStateEdit && m.form != nil {
		name := ""
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.vendors) {
			name = m.vendors[idx].Name
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Edit "+name, m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *VendorsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.vendors))
	for _, v := range m.vendors {
		rows = append(rows, table.Row{v.Name, FormatCategory(v.Category), FormatDate(v.UpdatedAt)})
	}

	m.table.SetRows(rows)
}

// Messages

type loadVendorsMsg struct {
	vendors []*vendor.Vendor
	err     error
}

func (m VendorsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		vendors, err := m.svc.List(ctx)

		return loadVendorsMsg{vendors: vendors, err: err}
	}
}

type vendorSaveMsg struct {
	err error
}

func (m VendorsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.vendors) {
		return nil
	}

	id := m.vendors[idx].ID

	var category *string
	if c := strings.TrimSpace(m.form.GetString("category")); c != "" {
		category = &c
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.SetCategory(ctx, id, category)

		return vendorSaveMsg{err: err}
	}
}
