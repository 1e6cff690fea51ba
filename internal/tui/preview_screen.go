package tui

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/render"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// previewChrome is the height taken by the frame, header, footer and help line
const previewChrome = 14

// PreviewModel shows the printable invoice or delivery note of the current invoice
type PreviewModel struct {
	app       *app.App
	viewport  viewport.Model
	delivery  bool
	doc       render.Document
	err       error
	statusMsg string
}

type previewDataMsg struct {
	doc render.Document
}

type previewExportedMsg struct {
	path string
	err  error
}

// NewPreviewModel creates the preview screen sized to the terminal
func NewPreviewModel(a *app.App, width, height int) tea.Model {
	vp := viewport.New(max(width-10, 40), max(height-previewChrome, 5))
	return &PreviewModel{app: a, viewport: vp}
}

func (m *PreviewModel) Init() tea.Cmd {
	return m.loadDocument()
}

func (m *PreviewModel) loadDocument() tea.Cmd {
	return func() tea.Msg {
		return previewDataMsg{doc: render.NewDocument(m.app.Workspace.Current())}
	}
}

// renderContent fills the viewport with the selected document
func (m *PreviewModel) renderContent() {
	var buf bytes.Buffer
	var err error
	if m.delivery {
		err = render.DeliveryNoteText(&buf, m.doc)
	} else {
		err = render.Text(&buf, m.doc)
	}
	m.err = err
	m.viewport.SetContent(buf.String())
}

func (m *PreviewModel) exportPDF() tea.Cmd {
	doc := m.doc
	return func() tea.Msg {
		path := filepath.Join(m.app.Config.Invoice.OutputDir, render.FileName(doc.Invoice))
		return previewExportedMsg{path: path, err: render.WriteFile(path, doc)}
	}
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-10, 40)
		m.viewport.Height = max(msg.Height-previewChrome, 5)
		return m, nil

	case RefreshDataMsg:
		return m, m.loadDocument()

	case previewDataMsg:
		m.doc = msg.doc
		m.renderContent()
		return m, nil

	case previewExportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Written %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch {
		case msg.String() == "tab":
			m.delivery = !m.delivery
			m.renderContent()
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Export):
			return m, m.exportPDF()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *PreviewModel) View() string {
	title := "Invoice"
	if m.delivery {
		title = "Delivery Note"
	}

	var s string
	s += titleStyle.Render(title) + subtitleStyle.Render(fmt.Sprintf("  %3.f%%", m.viewport.ScrollPercent()*100)) + "\n\n"
	s += m.viewport.View() + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += helpStyle.Render("  ↑/↓: scroll  tab: invoice/delivery note  x: export pdf")
	return s
}
