package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/render"
	"github.com/andy/fatoura/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type editorMode int

const (
	editorModeItems editorMode = iota
	editorModeItemForm
	editorModeHeaderForm
	editorModeConfirmNew
)

// item form field indices
const (
	itemFieldDescription = iota
	itemFieldPrice
	itemFieldQuantity
)

var itemFormFields = []fieldDef{
	{label: "Description:", placeholder: "Développement application web", width: 50, limit: 200},
	{label: "Unit Price (DA):", placeholder: "15000", width: 15, limit: 20},
	{label: "Quantity:", placeholder: "1", width: 10, limit: 12},
}

// header form field indices
const (
	headerFieldNumber = iota
	headerFieldDate
	headerFieldDue
	headerFieldTVA
	headerFieldPayment
	headerFieldNotes
	headerFieldClientName
	headerFieldClientAddress
	headerFieldClientPhone
	headerFieldClientNIF
)

var headerFormFields = []fieldDef{
	{label: "Invoice Number:", placeholder: "2026/001", width: 15, limit: 30},
	{label: "Date (YYYY-MM-DD):", width: 12, limit: 10},
	{label: "Due Date (YYYY-MM-DD):", width: 12, limit: 10},
	{label: "TVA (%):", placeholder: "19", width: 8, limit: 8},
	{label: "Payment (CASH, TRANSFER, CHECK):", width: 10, limit: 10},
	{label: "Notes:", width: 60, limit: 300},
	{label: "Client Name:", width: 40, limit: 100},
	{label: "Client Address:", width: 50, limit: 200},
	{label: "Client Phone:", width: 20, limit: 30},
	{label: "Client NIF:", width: 25, limit: 30},
}

// EditorModel edits the current invoice: header, client and line items
type EditorModel struct {
	app       *app.App
	invoice   domain.InvoiceData
	totals    domain.Totals
	cursor    int
	err       error
	statusMsg string

	mode        editorMode
	form        *form
	editingItem string
}

type editorDataMsg struct {
	invoice domain.InvoiceData
}

// editorSavedMsg reports the result of any change to the invoice
type editorSavedMsg struct {
	status string
	err    error
}

// NewEditorModel creates the invoice editor screen
func NewEditorModel(a *app.App) tea.Model {
	return &EditorModel{app: a}
}

// IsCapturingInput returns true when a form or a confirmation is active
func (m *EditorModel) IsCapturingInput() bool {
	return m.mode != editorModeItems
}

func (m *EditorModel) Init() tea.Cmd {
	return m.loadInvoice()
}

func (m *EditorModel) loadInvoice() tea.Cmd {
	return func() tea.Msg {
		return editorDataMsg{invoice: m.app.Workspace.Current()}
	}
}

func (m *EditorModel) currentItem() (domain.InvoiceItem, bool) {
	if m.cursor >= len(m.invoice.Items) {
		return domain.InvoiceItem{}, false
	}
	return m.invoice.Items[m.cursor], true
}

func (m *EditorModel) openItemForm(item domain.InvoiceItem) tea.Cmd {
	m.editingItem = item.ID
	m.form = newForm("Edit Item", itemFormFields, []string{
		item.Description,
		strconv.FormatFloat(item.Price, 'f', -1, 64),
		strconv.FormatFloat(item.Quantity, 'f', -1, 64),
	})
	m.mode = editorModeItemForm
	return m.form.Focus()
}

func (m *EditorModel) openHeaderForm() tea.Cmd {
	inv := m.invoice
	m.form = newForm("Invoice Details", headerFormFields, []string{
		inv.InvoiceNumber,
		inv.Date.String(),
		inv.DueDate.String(),
		strconv.FormatFloat(inv.TVARate, 'f', -1, 64),
		string(inv.PaymentMethod),
		inv.Notes,
		inv.Client.Name,
		inv.Client.Address,
		inv.Client.Phone,
		inv.Client.NIF,
	})
	m.mode = editorModeHeaderForm
	return m.form.Focus()
}

func (m *EditorModel) addItem() tea.Cmd {
	return func() tea.Msg {
		item, err := m.app.Workspace.AddItem(context.Background())
		if err != nil {
			return editorSavedMsg{err: err}
		}
		return itemAddedMsg{item: item}
	}
}

type itemAddedMsg struct {
	item domain.InvoiceItem
}

func (m *EditorModel) saveItem() tea.Cmd {
	f := m.form
	id := m.editingItem
	description := f.value(itemFieldDescription)
	price, priceErr := parseNumber(f.value(itemFieldPrice))
	quantity, qtyErr := parseNumber(f.value(itemFieldQuantity))

	return func() tea.Msg {
		if err := errors.Join(priceErr, qtyErr); err != nil {
			return editorSavedMsg{err: err}
		}
		err := m.app.Workspace.UpdateItem(context.Background(), id,
			domain.SetDescription{Value: description},
			domain.SetPrice{Value: price},
			domain.SetQuantity{Value: quantity},
		)
		return editorSavedMsg{status: "Item saved", err: err}
	}
}

func (m *EditorModel) removeItem(item domain.InvoiceItem) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Workspace.RemoveItem(context.Background(), item.ID)
		return editorSavedMsg{status: "Item removed", err: err}
	}
}

// saveHeader validates every field before applying any change
func (m *EditorModel) saveHeader() tea.Cmd {
	f := m.form
	number := f.value(headerFieldNumber)
	notes := f.value(headerFieldNotes)
	client := []domain.ClientUpdate{
		domain.SetClientName{Value: f.value(headerFieldClientName)},
		domain.SetClientAddress{Value: f.value(headerFieldClientAddress)},
		domain.SetClientPhone{Value: f.value(headerFieldClientPhone)},
		domain.SetClientNIF{Value: f.value(headerFieldClientNIF)},
	}
	date, dateErr := parseFormDate(f.value(headerFieldDate))
	due, dueErr := parseFormDate(f.value(headerFieldDue))
	tva, tvaErr := parseNumber(f.value(headerFieldTVA))
	pm, pmErr := domain.ParsePaymentMethod(f.value(headerFieldPayment))

	return func() tea.Msg {
		if err := errors.Join(dateErr, dueErr, tvaErr, pmErr); err != nil {
			return editorSavedMsg{err: err}
		}

		err := m.app.Workspace.SetHeader(context.Background(), service.InvoiceHeader{
			Number:        number,
			Date:          date,
			DueDate:       due,
			TVARate:       tva,
			PaymentMethod: pm,
			Notes:         notes,
			Client:        client,
		})
		if err != nil {
			return editorSavedMsg{err: err}
		}
		return editorSavedMsg{status: "Invoice details saved"}
	}
}

func (m *EditorModel) saveToArchive() tea.Cmd {
	number := m.invoice.InvoiceNumber
	return func() tea.Msg {
		outcome, err := m.app.Workspace.SaveToArchive(context.Background())
		if errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return editorSavedMsg{err: fmt.Errorf("invoice number %s is already archived; change it with 'f'", number)}
		}
		if err != nil {
			return editorSavedMsg{err: err}
		}
		if outcome == domain.OutcomeUpdated {
			return editorSavedMsg{status: "Archived invoice updated"}
		}
		return editorSavedMsg{status: "Invoice saved to archive"}
	}
}

func (m *EditorModel) newInvoice() tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.Workspace.NewInvoice(context.Background())
		if err != nil {
			return editorSavedMsg{err: err}
		}
		return editorSavedMsg{status: fmt.Sprintf("New invoice %s", inv.InvoiceNumber)}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadInvoice()

	case editorDataMsg:
		m.invoice = msg.invoice
		m.totals = msg.invoice.Totals()
		m.cursor = clampCursor(m.cursor, len(m.invoice.Items))
		return m, nil

	case invoiceChangedMsg:
		m.mode = editorModeItems
		m.statusMsg = msg.status
		m.err = nil
		m.cursor = 0
		return m, m.loadInvoice()

	case itemAddedMsg:
		m.cursor = len(m.invoice.Items)
		return m, tea.Batch(m.loadInvoice(), m.openItemForm(msg.item))

	case editorSavedMsg:
		if msg.err != nil {
			if m.mode == editorModeItemForm || m.mode == editorModeHeaderForm {
				m.form.err = msg.err
			} else {
				m.err = msg.err
			}
			return m, nil
		}
		m.mode = editorModeItems
		m.statusMsg = msg.status
		return m, m.loadInvoice()
	}

	switch m.mode {
	case editorModeItemForm, editorModeHeaderForm:
		action, cmd := m.form.Update(msg)
		switch action {
		case formCancel:
			m.mode = editorModeItems
			return m, nil
		case formSubmit:
			if m.mode == editorModeItemForm {
				return m, m.saveItem()
			}
			return m, m.saveHeader()
		}
		return m, cmd

	case editorModeConfirmNew:
		if msg, ok := msg.(tea.KeyMsg); ok {
			m.mode = editorModeItems
			if msg.String() == "y" || msg.String() == "o" {
				return m, m.newInvoice()
			}
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
			if m.cursor < len(m.invoice.Items)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.addItem()
		case key.Matches(msg, DefaultKeyMap.Select):
			if item, ok := m.currentItem(); ok {
				return m, m.openItemForm(item)
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if item, ok := m.currentItem(); ok {
				return m, m.removeItem(item)
			}
		case msg.String() == "f":
			return m, m.openHeaderForm()
		case key.Matches(msg, DefaultKeyMap.Save):
			return m, m.saveToArchive()
		case msg.String() == "N":
			m.mode = editorModeConfirmNew
		}
	}

	return m, nil
}

func (m *EditorModel) View() string {
	if m.mode == editorModeItemForm || m.mode == editorModeHeaderForm {
		return m.form.View()
	}

	inv := m.invoice
	var s string

	s += titleStyle.Render("Facture N° "+inv.InvoiceNumber) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  Date %s  |  Échéance %s  |  %s  |  TVA %s",
		render.Date(inv.Date), render.Date(inv.DueDate),
		render.PaymentLabel(inv.PaymentMethod), render.Percent(inv.TVARate))) + "\n\n"

	client := inv.Client.Name
	if client == "" {
		client = warnStyle.Render("no client yet (press c to pick one, f to type one)")
	}
	s += fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Client:"), client)

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(inv.Items) == 0 {
		s += subtitleStyle.Render("  No items yet. Press 'n' to add one.") + "\n"
	}
	for i, item := range inv.Items {
		desc := item.Description
		if desc == "" {
			desc = "(no description)"
		}
		line := fmt.Sprintf("%-40s %8s x %s", truncateStr(desc, 40),
			render.Quantity(item.Quantity), amountStyle.Render(render.Money(item.Price)))
		s += cursorLine(i == m.cursor, line) + amountStyle.Render(render.Money(item.Amount())) + "\n"
	}

	s += "\n" + m.viewTotals()

	if m.mode == editorModeConfirmNew {
		s += "\n" + warnStyle.Render("  Start a new invoice? Unsaved changes to this one are dropped. (y/n)")
		return s
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: add item  enter: edit item  d: remove item  f: details  s: save to archive  N: new invoice")
	return s
}

func (m *EditorModel) viewTotals() string {
	t := m.totals
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), amountStyle.Render(value))
	}

	s := row("Total HT", render.Money(t.Subtotal))
	s += row("TVA "+render.Percent(m.invoice.TVARate), render.Money(t.TaxAmount))
	if t.StampDuty > 0 {
		s += row("Droit de timbre", render.Money(t.StampDuty))
	}
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Total TTC"), totalStyle.Render(amountStyle.Render(render.Money(t.Total))))
	return s
}

// parseFormDate treats an empty field as an unset date
func parseFormDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
