package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/render"
	"github.com/andy/fatoura/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ArchiveModel lists archived invoices with a yearly revenue summary
type ArchiveModel struct {
	app       *app.App
	invoices  []domain.InvoiceData
	summary   service.ArchiveSummary
	year      int
	cursor    int
	confirm   bool
	err       error
	statusMsg string
}

type archiveDataMsg struct {
	invoices []domain.InvoiceData
	summary  service.ArchiveSummary
}

type archiveDeletedMsg struct {
	number string
	err    error
}

type archiveExportedMsg struct {
	path string
	err  error
}

// NewArchiveModel creates the archive screen
func NewArchiveModel(a *app.App) tea.Model {
	return &ArchiveModel{
		app:  a,
		year: time.Now().Year(),
	}
}

// IsCapturingInput returns true while a delete confirmation is pending
func (m *ArchiveModel) IsCapturingInput() bool {
	return m.confirm
}

func (m *ArchiveModel) Init() tea.Cmd {
	return m.loadArchive()
}

func (m *ArchiveModel) loadArchive() tea.Cmd {
	year := m.year
	return func() tea.Msg {
		archive := m.app.Workspace.Archive()
		return archiveDataMsg{
			invoices: archive,
			summary:  service.SummarizeArchive(archive, year),
		}
	}
}

func (m *ArchiveModel) current() (domain.InvoiceData, bool) {
	if m.cursor >= len(m.invoices) {
		return domain.InvoiceData{}, false
	}
	return m.invoices[m.cursor], true
}

func (m *ArchiveModel) openInvoice(inv domain.InvoiceData) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Workspace.OpenFromArchive(context.Background(), inv.ID); err != nil {
			return ErrorMsg{Err: err}
		}
		return invoiceChangedMsg{status: fmt.Sprintf("Opened %s from the archive", inv.InvoiceNumber)}
	}
}

func (m *ArchiveModel) deleteInvoice(inv domain.InvoiceData) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Workspace.DeleteFromArchive(context.Background(), inv.ID)
		return archiveDeletedMsg{number: inv.InvoiceNumber, err: err}
	}
}

func (m *ArchiveModel) exportInvoice(inv domain.InvoiceData) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(m.app.Config.Invoice.OutputDir, render.FileName(inv))
		err := render.WriteFile(path, render.NewDocument(inv))
		return archiveExportedMsg{path: path, err: err}
	}
}

func (m *ArchiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadArchive()

	case archiveDataMsg:
		m.invoices = msg.invoices
		m.summary = msg.summary
		m.cursor = clampCursor(m.cursor, len(m.invoices))
		return m, nil

	case archiveDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted invoice %s", msg.number)
		return m, m.loadArchive()

	case archiveExportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Written %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		if m.confirm {
			m.confirm = false
			if inv, ok := m.current(); ok && (msg.String() == "y" || msg.String() == "o") {
				return m, m.deleteInvoice(inv)
			}
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select), msg.String() == "o":
			if inv, ok := m.current(); ok {
				return m, m.openInvoice(inv)
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if _, ok := m.current(); ok {
				m.confirm = true
			}
		case key.Matches(msg, DefaultKeyMap.Export):
			if inv, ok := m.current(); ok {
				return m, m.exportInvoice(inv)
			}
		case msg.String() == "<", msg.String() == "h":
			m.year--
			return m, m.loadArchive()
		case msg.String() == ">", msg.String() == "l":
			m.year++
			return m, m.loadArchive()
		}
	}

	return m, nil
}

func (m *ArchiveModel) View() string {
	var s string
	s += titleStyle.Render("Archive") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No archived invoices. Save one from the invoice screen with 's'.") + "\n"
		return s
	}

	// Header
	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-12s  %-10s  %-28s  %16s",
		"Number", "Date", "Client", "Total",
	)) + "\n"

	for i, inv := range m.invoices {
		line := fmt.Sprintf("%-12s  %-10s  %-28s  %16s",
			truncateStr(inv.InvoiceNumber, 12),
			render.Date(inv.Date),
			truncateStr(inv.Client.Name, 28),
			render.Money(inv.StoredTotal()),
		)
		s += cursorLine(i == m.cursor, line) + "\n"
	}

	s += "\n" + m.viewSummary()

	if m.confirm {
		inv, _ := m.current()
		s += "\n" + warnStyle.Render(fmt.Sprintf("  Delete invoice %s from the archive? (y/n)", inv.InvoiceNumber))
		return s
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter/o: open in editor  x: export pdf  d: delete  </>: summary year")
	return s
}

func (m *ArchiveModel) viewSummary() string {
	sum := m.summary
	bold := lipgloss.NewStyle().Bold(true)

	s := bold.Render(fmt.Sprintf("  Revenue %d", sum.Year)) + "\n"
	if sum.Invoices == 0 {
		return s + subtitleStyle.Render("    No invoices dated this year") + "\n"
	}

	for month := time.January; month <= time.December; month++ {
		if revenue := sum.ByMonth[month]; revenue != 0 {
			s += fmt.Sprintf("    %-10s %s\n", month.String()[:3], amountStyle.Render(render.Money(revenue)))
		}
	}
	s += "    " + bold.Render(fmt.Sprintf("%-10s %s", "Total", amountStyle.Render(render.Money(sum.Total)))) + "\n"
	if sum.StampDuty > 0 {
		s += subtitleStyle.Render(fmt.Sprintf("    incl. %s stamp duty", render.Money(sum.StampDuty))) + "\n"
	}

	for _, c := range sum.ByClient {
		s += fmt.Sprintf("    %-24s %3d  %s\n", truncateStr(c.Name, 24), c.Invoices, amountStyle.Render(render.Money(c.Total)))
	}
	return s
}
