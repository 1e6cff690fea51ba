package tui

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
	clientModeConfirmDelete
)

// client form field indices
const (
	clientFieldName = iota
	clientFieldAddress
	clientFieldPhone
	clientFieldNIF
)

var clientFormFields = []fieldDef{
	{label: "Name:", placeholder: "Sarl Atlas", width: 40, limit: 100},
	{label: "Address:", placeholder: "12 rue Larbi Ben M'hidi, Oran", width: 50, limit: 200},
	{label: "Phone:", placeholder: "0550 00 00 00", width: 20, limit: 30},
	{label: "NIF:", placeholder: "000016001234567", width: 25, limit: 30},
}

// ClientsModel displays the client roster with create/edit forms
type ClientsModel struct {
	app       *app.App
	clients   []domain.ClientInfo
	selected  string // client attached to the current invoice
	cursor    int
	err       error
	statusMsg string

	// Form state
	mode      clientMode
	form      *form
	editingID string // empty for a new client
}

type clientsDataMsg struct {
	clients  []domain.ClientInfo
	selected string
}

type clientSavedMsg struct {
	name string
	err  error
}

type clientDeletedMsg struct {
	name string
	err  error
}

type clientSelectedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{app: a}
}

// IsCapturingInput returns true when the form or a confirmation is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode != clientModeList
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		state := m.app.Workspace.Snapshot()
		return clientsDataMsg{clients: state.Clients, selected: state.Current.Client.ID}
	}
}

func (m *ClientsModel) openForm(editing *domain.ClientInfo) tea.Cmd {
	if editing != nil {
		m.mode = clientModeEdit
		m.editingID = editing.ID
		m.form = newForm("Edit Client", clientFormFields,
			[]string{editing.Name, editing.Address, editing.Phone, editing.NIF})
	} else {
		m.mode = clientModeNew
		m.editingID = ""
		title := "New Client"
		if len(m.clients) == 0 {
			title = "Welcome to fatoura! Add your first client"
		}
		m.form = newForm(title, clientFormFields, nil)
	}
	return m.form.Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	name := m.form.value(clientFieldName)
	updates := []domain.ClientUpdate{
		domain.SetClientName{Value: name},
		domain.SetClientAddress{Value: m.form.value(clientFieldAddress)},
		domain.SetClientPhone{Value: m.form.value(clientFieldPhone)},
		domain.SetClientNIF{Value: m.form.value(clientFieldNIF)},
	}
	editingID := m.editingID

	return func() tea.Msg {
		ctx := context.Background()

		id := editingID
		if id == "" {
			client, err := m.app.Workspace.AddClient(ctx)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			id = client.ID
		}
		if err := m.app.Workspace.UpdateClient(ctx, id, updates...); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: name}
	}
}

func (m *ClientsModel) deleteClient(c domain.ClientInfo) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Workspace.DeleteClient(context.Background(), c.ID)
		return clientDeletedMsg{name: c.Name, err: err}
	}
}

func (m *ClientsModel) selectClient(c domain.ClientInfo) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Workspace.SelectClient(context.Background(), c.ID)
		return clientSelectedMsg{name: c.Name, err: err}
	}
}

func (m *ClientsModel) current() (domain.ClientInfo, bool) {
	if len(m.clients) == 0 || m.cursor >= len(m.clients) {
		return domain.ClientInfo{}, false
	}
	return m.clients[m.cursor], true
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		return m, m.openForm(nil)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadClients()

	case clientsDataMsg:
		m.clients = msg.clients
		m.selected = msg.selected
		m.cursor = clampCursor(m.cursor, len(m.clients))
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.err = msg.err
			}
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		return m, m.loadClients()

	case clientDeletedMsg:
		m.mode = clientModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.name)
		return m, m.loadClients()

	case clientSelectedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%s set as the invoice client", msg.name)
		return m, m.loadClients()
	}

	switch m.mode {
	case clientModeNew, clientModeEdit:
		action, cmd := m.form.Update(msg)
		switch action {
		case formCancel:
			m.mode = clientModeList
			return m, nil
		case formSubmit:
			return m, m.saveClient()
		}
		return m, cmd

	case clientModeConfirmDelete:
		if msg, ok := msg.(tea.KeyMsg); ok {
			if c, ok := m.current(); ok && (msg.String() == "y" || msg.String() == "o") {
				return m, m.deleteClient(c)
			}
			m.mode = clientModeList
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.openForm(nil)
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if c, ok := m.current(); ok {
				return m, m.openForm(&c)
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if _, ok := m.current(); ok {
				m.mode = clientModeConfirmDelete
			}
		case key.Matches(msg, DefaultKeyMap.Save):
			if c, ok := m.current(); ok {
				return m, m.selectClient(c)
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.form.View()
	}
	return m.viewList()
}

func (m *ClientsModel) viewList() string {
	var s string

	s += titleStyle.Render("Clients") + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	if m.mode == clientModeConfirmDelete {
		c, _ := m.current()
		s += "\n" + warnStyle.Render(fmt.Sprintf("  Delete %s? Invoices keep their copy. (y/n)", c.Name))
		return s
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  s: use on invoice  d: delete")

	return s
}

func (m *ClientsModel) renderClient(index int, client domain.ClientInfo) string {
	name := client.Name
	if name == "" {
		name = "(unnamed)"
	}
	if client.ID == m.selected {
		name += " ✓"
	}

	line1 := cursorLine(index == m.cursor, name)

	detail := client.Address
	if client.Phone != "" {
		detail += "  |  " + client.Phone
	}
	if client.NIF != "" {
		detail += "  |  NIF " + client.NIF
	}
	if detail == "" {
		return line1
	}
	return line1 + "\n" + subtitleStyle.Render("    "+truncateStr(detail, 70))
}
