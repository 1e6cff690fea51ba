package tui

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type companyMode int

const (
	companyModeView companyMode = iota
	companyModeEdit
)

// company form field indices
const (
	companyFieldName = iota
	companyFieldAddress
	companyFieldPhone
	companyFieldRC
	companyFieldNIF
	companyFieldNIS
	companyFieldAI
	companyFieldBankName
	companyFieldBankAccount
)

var companyFormFields = []fieldDef{
	{label: "Company Name:", width: 50, limit: 120},
	{label: "Address:", width: 60, limit: 200},
	{label: "Phone:", width: 25, limit: 30},
	{label: "RC:", width: 25, limit: 40},
	{label: "NIF:", width: 25, limit: 40},
	{label: "NIS:", width: 25, limit: 40},
	{label: "AI:", width: 25, limit: 40},
	{label: "Bank:", width: 50, limit: 120},
	{label: "Account (RIB):", width: 40, limit: 60},
}

type companySavedMsg struct {
	err error
}

// CompanyModel shows and edits the issuing company profile
type CompanyModel struct {
	app       *app.App
	mode      companyMode
	company   domain.CompanyInfo
	form      *form
	statusMsg string
}

// NewCompanyModel creates a new company screen
func NewCompanyModel(a *app.App) tea.Model {
	return &CompanyModel{
		app:     a,
		mode:    companyModeView,
		company: a.Workspace.Company(),
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *CompanyModel) IsCapturingInput() bool {
	return m.mode == companyModeEdit
}

func (m *CompanyModel) Init() tea.Cmd {
	return nil
}

func (m *CompanyModel) openForm() tea.Cmd {
	c := m.company
	m.form = newForm("Edit Company", companyFormFields, []string{
		c.Name, c.Address, c.Phone, c.RC, c.NIF, c.NIS, c.AI, c.BankName, c.BankAccount,
	})
	m.mode = companyModeEdit
	return m.form.Focus()
}

func (m *CompanyModel) saveCompany() tea.Cmd {
	f := m.form
	company := domain.CompanyInfo{
		Name:        f.value(companyFieldName),
		Address:     f.value(companyFieldAddress),
		Phone:       f.value(companyFieldPhone),
		RC:          f.value(companyFieldRC),
		NIF:         f.value(companyFieldNIF),
		NIS:         f.value(companyFieldNIS),
		AI:          f.value(companyFieldAI),
		BankName:    f.value(companyFieldBankName),
		BankAccount: f.value(companyFieldBankAccount),
	}
	return func() tea.Msg {
		return companySavedMsg{err: m.app.Workspace.UpdateCompany(context.Background(), company)}
	}
}

func (m *CompanyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		if m.mode == companyModeView {
			m.company = m.app.Workspace.Company()
		}
		return m, nil

	case companySavedMsg:
		if msg.err != nil {
			m.form.err = msg.err
			return m, nil
		}
		m.mode = companyModeView
		m.company = m.app.Workspace.Company()
		m.statusMsg = "Company profile saved"
		return m, nil
	}

	if m.mode == companyModeEdit {
		action, cmd := m.form.Update(msg)
		switch action {
		case formCancel:
			m.mode = companyModeView
			return m, nil
		case formSubmit:
			return m, m.saveCompany()
		}
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.statusMsg = ""
		if key.Matches(msg, DefaultKeyMap.Select) {
			return m, m.openForm()
		}
	}
	return m, nil
}

func (m *CompanyModel) View() string {
	if m.mode == companyModeEdit {
		return m.form.View()
	}

	var s string
	s += titleStyle.Render("Company") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	c := m.company
	values := []string{c.Name, c.Address, c.Phone, c.RC, c.NIF, c.NIS, c.AI, c.BankName, c.BankAccount}
	for i, def := range companyFormFields {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(def.label), valueStyle.Render(values[i]))
	}

	s += "\n" + subtitleStyle.Render("  Changes apply to the current invoice; archived invoices keep their copy.")
	s += "\n\n" + helpStyle.Render("  enter: edit company")

	return s
}
