package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ingest"
)

const ingestTimeout = 2 * time.Minute

type ingestState int

const (
	ingestStateForm ingestState = iota
	ingestStateRunning
	ingestStateResult
)

type IngestModel struct {
	CommonModel
	svc *ingest.Service

	state   ingestState
	form    *huh.Form
	spinner spinner.Model

	path   string
	result *ingest.Result
	err    error
}

func NewIngestModel(svc *ingest.Service, defaultPath string) IngestModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := IngestModel{
		svc:     svc,
		spinner: s,
		path:    defaultPath,
	}
	m.form = m.newForm()

	return m
}

func (m *IngestModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Feed file").
				Placeholder("data/invoices.json").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m IngestModel) Title() string { return "Ingest Feed" }

func (m IngestModel) ShortHelp() string {
	return "Esc: back | Enter: confirm"
}

func (m IngestModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m IngestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ingestResultMsg:
		m.state = ingestStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case spinner.TickMsg:
		if m.state != ingestStateRunning {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}
	}

	if m.state != ingestStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// Bound values live on the copy the form was built from; read them back
	// through the form.
	m.path = strings.TrimSpace(m.form.GetString("path"))
	m.state = ingestStateRunning

	return m, tea.Batch(m.spinner.Tick, m.ingestCmd(m.path))
}

func (m IngestModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case ingestStateResult:
		m.state = ingestStateForm
		m.result = nil
		m.err = nil
		m.form = m.newForm()

		return m, m.form.Init()
	case ingestStateRunning:
		return m, nil
	}

	return m, Back
}

func (m IngestModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case ingestStateRunning:
		return style.Render(fmt.Sprintf("%s Ingesting %s...", m.spinner.View(), m.path))
	case ingestStateResult:
		return style.Render(m.viewResult() + "\n\n(Esc to go back)")
	}

	return style.Render(m.form.View())
}

func (m IngestModel) viewResult() string {
	if m.err != nil {
		return errorStyle(fmt.Sprintf("Error: %v", m.err))
	}

	summary := successStyle(fmt.Sprintf(
		"Processed %d records: %d invoices, %d line items, %d payments.",
		m.result.Records, m.result.Invoices, m.result.LineItems, m.result.Payments,
	))

	if len(m.result.Diagnostics) == 0 {
		return summary
	}

	var b strings.Builder
	for _, d := range m.result.Diagnostics {
		fmt.Fprintf(&b, "  %s\n", d)
	}

	return summary + "\n\n" + panel(
		fmt.Sprintf("%d diagnostics", len(m.result.Diagnostics)),
		strings.TrimRight(b.String(), "\n"),
	)
}

// Messages

type ingestResultMsg struct {
	result *ingest.Result
	err    error
}

func (m IngestModel) ingestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		docs, err := ingest.LoadFeed(path)
		if err != nil {
			return ingestResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
		defer cancel()

		res, err := m.svc.Ingest(ctx, docs)

		return ingestResultMsg{result: res, err: err}
	}
}
