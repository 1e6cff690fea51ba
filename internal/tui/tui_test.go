package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/config"
	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/repository"
	"github.com/andy/fatoura/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	f := domain.DefaultFactory()
	seq := 0
	f.Now = func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) }
	f.NewID = func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}
	f.Intn = func(int) int { return 42 }

	store := repository.NewMemoryStore()
	ws := service.NewWorkspace(service.NewRepositories(store), f)
	if err := ws.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Storage.Driver = config.DriverMemory
	cfg.Invoice.OutputDir = t.TempDir()
	return &app.App{Config: cfg, Store: store, Workspace: ws}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and feeds the resulting message back once; used for
// commands the screens return themselves, never for cursor blink ticks
func send(t *testing.T, m tea.Model, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("%T: no command for %#v", m, msg)
	}
	return cmd()
}

func TestModel_GlobalNavigation(t *testing.T) {
	a := newTestApp(t)
	var m tea.Model = New(a)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	tests := []struct {
		key  string
		want Screen
	}{
		{"c", ScreenClients},
		{"a", ScreenArchive},
		{",", ScreenCompany},
		{"p", ScreenPreview},
		{"i", ScreenEditor},
	}
	for _, tt := range tests {
		m, _ = m.Update(keyPress(tt.key))
		if got := m.(Model).currentScreen; got != tt.want {
			t.Errorf("after %q screen = %s, want %s", tt.key, got, tt.want)
		}
	}

	if !strings.Contains(m.View(), "fatoura - Invoice") {
		t.Errorf("header missing from view")
	}
}

func TestModel_FormSuppressesNavigation(t *testing.T) {
	a := newTestApp(t)
	var m tea.Model = New(a)
	m, _ = m.Update(keyPress("c"))
	m, _ = m.Update(OpenNewClientFormMsg{})
	m, _ = m.Update(keyPress("a"))

	if got := m.(Model).currentScreen; got != ScreenClients {
		t.Fatalf("navigated away from an open form to %s", got)
	}
	cm := m.(Model).screens[ScreenClients].(*ClientsModel)
	if got := cm.form.fields[clientFieldName].Value(); got != "a" {
		t.Fatalf("form did not receive key, name = %q", got)
	}
}

func TestModel_FirstRunOpensClients(t *testing.T) {
	a := newTestApp(t)
	var m tea.Model = New(a)
	m, _ = m.Update(firstRunCheckMsg{hasClients: false})
	if got := m.(Model).currentScreen; got != ScreenClients {
		t.Fatalf("screen = %s, want Clients", got)
	}

	// Only the first check redirects
	m, _ = m.Update(keyPress("i"))
	m, _ = m.Update(firstRunCheckMsg{hasClients: false})
	if got := m.(Model).currentScreen; got != ScreenEditor {
		t.Fatalf("screen = %s, want Invoice", got)
	}
}

func TestModel_InvoiceChangedShowsEditor(t *testing.T) {
	a := newTestApp(t)
	var m tea.Model = New(a)
	m, _ = m.Update(keyPress("a"))
	m, _ = m.Update(invoiceChangedMsg{status: "Opened 2026/142 from the archive"})

	root := m.(Model)
	if root.currentScreen != ScreenEditor {
		t.Fatalf("screen = %s, want Invoice", root.currentScreen)
	}
	if got := root.screens[ScreenEditor].(*EditorModel).statusMsg; got != "Opened 2026/142 from the archive" {
		t.Fatalf("status = %q", got)
	}
}

func TestEditor_AddAndEditItem(t *testing.T) {
	a := newTestApp(t)
	m := NewEditorModel(a).(*EditorModel)
	m.Update(m.Init()())

	m.Update(send(t, m, keyPress("n")))
	if m.mode != editorModeItemForm {
		t.Fatalf("mode = %d, want item form", m.mode)
	}

	m.form.fields[itemFieldDescription].SetValue("Formation")
	m.form.fields[itemFieldPrice].SetValue("12,5")
	m.form.fields[itemFieldQuantity].SetValue("4")
	m.Update(send(t, m, keyPress("ctrl+s")))
	m.Update(m.loadInvoice()())

	if m.mode != editorModeItems || m.statusMsg != "Item saved" {
		t.Fatalf("mode = %d status = %q", m.mode, m.statusMsg)
	}
	items := a.Workspace.Current().Items
	if len(items) != 1 || items[0].Description != "Formation" || items[0].Price != 12.5 || items[0].Quantity != 4 {
		t.Fatalf("unexpected items %+v", items)
	}
	if m.totals.Subtotal != 50 {
		t.Fatalf("subtotal = %v, want 50", m.totals.Subtotal)
	}

	m.Update(send(t, m, keyPress("d")))
	if got := len(a.Workspace.Current().Items); got != 0 {
		t.Fatalf("items after remove = %d", got)
	}
}

func TestEditor_ItemFormRejectsBadNumber(t *testing.T) {
	a := newTestApp(t)
	m := NewEditorModel(a).(*EditorModel)
	m.Update(m.Init()())
	m.Update(send(t, m, keyPress("n")))

	m.form.fields[itemFieldPrice].SetValue("douze")
	m.Update(send(t, m, keyPress("ctrl+s")))

	if m.mode != editorModeItemForm || m.form.err == nil {
		t.Fatalf("expected the form to stay open with an error")
	}
	if got := a.Workspace.Current().Items[0].Price; got != 0 {
		t.Fatalf("price changed to %v", got)
	}
}

func TestEditor_HeaderForm(t *testing.T) {
	a := newTestApp(t)
	m := NewEditorModel(a).(*EditorModel)
	m.Update(m.Init()())
	before := a.Workspace.Current()

	m.Update(keyPress("f"))
	if m.mode != editorModeHeaderForm {
		t.Fatalf("mode = %d, want header form", m.mode)
	}
	m.form.fields[headerFieldNumber].SetValue("2026/007")
	m.form.fields[headerFieldDate].SetValue("14/03/2026")
	m.Update(send(t, m, keyPress("ctrl+s")))

	if m.form.err == nil {
		t.Fatalf("expected a date error")
	}
	if got := a.Workspace.Current().InvoiceNumber; got != before.InvoiceNumber {
		t.Fatalf("number changed to %q despite the error", got)
	}

	m.form.fields[headerFieldDate].SetValue("2026-04-01")
	m.form.fields[headerFieldPayment].SetValue("cash")
	m.form.fields[headerFieldClientName].SetValue("Comptoir")
	m.Update(send(t, m, keyPress("ctrl+s")))

	cur := a.Workspace.Current()
	if cur.InvoiceNumber != "2026/007" || cur.Date.String() != "2026-04-01" {
		t.Fatalf("header not saved: %s %s", cur.InvoiceNumber, cur.Date)
	}
	if cur.PaymentMethod != domain.PaymentCash || cur.Client.Name != "Comptoir" {
		t.Fatalf("payment/client not saved: %s %q", cur.PaymentMethod, cur.Client.Name)
	}
}

func TestEditor_SaveToArchiveAndNewInvoice(t *testing.T) {
	a := newTestApp(t)
	m := NewEditorModel(a).(*EditorModel)
	m.Update(m.Init()())

	m.Update(send(t, m, keyPress("s")))
	if m.statusMsg != "Invoice saved to archive" {
		t.Fatalf("status = %q", m.statusMsg)
	}
	m.Update(send(t, m, keyPress("s")))
	if m.statusMsg != "Archived invoice updated" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	archivedID := a.Workspace.Current().ID
	m.Update(keyPress("N"))
	if !m.IsCapturingInput() {
		t.Fatalf("expected a confirmation")
	}
	m.Update(send(t, m, keyPress("y")))
	if a.Workspace.Current().ID == archivedID {
		t.Fatalf("new invoice kept the archived id")
	}

	// Same generated number, different invoice
	m.Update(send(t, m, keyPress("s")))
	if m.err == nil || !strings.Contains(m.err.Error(), "already archived") {
		t.Fatalf("expected duplicate error, got %v", m.err)
	}
}

func TestEditor_DuplicateNumberReportedFromKeypress(t *testing.T) {
	a := newTestApp(t)
	m := NewEditorModel(a).(*EditorModel)
	m.Update(m.Init()())
	m.Update(send(t, m, keyPress("s")))
	m.Update(keyPress("N"))
	m.Update(send(t, m, keyPress("y")))
	m.Update(m.loadInvoice()())

	_, save := m.Update(keyPress("s"))
	if save == nil {
		t.Fatal("no save command")
	}
	// A refresh lands before the command runs
	stale := m.invoice.Clone()
	stale.InvoiceNumber = "2026/999"
	m.Update(editorDataMsg{invoice: stale})

	m.Update(save())
	if m.err == nil || !strings.Contains(m.err.Error(), "2026/142 is already archived") {
		t.Fatalf("expected duplicate error for 2026/142, got %v", m.err)
	}
}

func TestClients_CreateSelectEdit(t *testing.T) {
	a := newTestApp(t)
	m := NewClientsModel(a).(*ClientsModel)
	m.Update(m.Init()())
	m.Update(OpenNewClientFormMsg{})

	m.form.fields[clientFieldName].SetValue("Sarl Atlas")
	m.form.fields[clientFieldNIF].SetValue("0991")
	m.Update(send(t, m, keyPress("ctrl+s")))
	m.Update(m.loadClients()())

	if m.statusMsg != "Saved: Sarl Atlas" || len(m.clients) != 1 {
		t.Fatalf("status = %q clients = %d", m.statusMsg, len(m.clients))
	}

	m.Update(send(t, m, keyPress("s")))
	if got := a.Workspace.Current().Client; got.Name != "Sarl Atlas" || got.NIF != "0991" {
		t.Fatalf("client not attached: %+v", got)
	}

	m.Update(keyPress("enter"))
	if m.mode != clientModeEdit || m.form.value(clientFieldName) != "Sarl Atlas" {
		t.Fatalf("edit form not prefilled")
	}
	m.form.fields[clientFieldPhone].SetValue("0550")
	m.Update(send(t, m, keyPress("ctrl+s")))

	c, err := a.Workspace.Client(m.clients[0].ID)
	if err != nil || c.Phone != "0550" {
		t.Fatalf("client not updated: %+v %v", c, err)
	}
}

func TestClients_EmptyNameIsAccepted(t *testing.T) {
	a := newTestApp(t)
	m := NewClientsModel(a).(*ClientsModel)
	m.Update(OpenNewClientFormMsg{})
	m.Update(send(t, m, keyPress("ctrl+s")))
	m.Update(m.loadClients()())

	clients := a.Workspace.Clients()
	if len(clients) != 1 || clients[0].Name != "" || m.mode != clientModeList {
		t.Fatalf("unexpected roster %+v (mode %d)", clients, m.mode)
	}
	if !strings.Contains(m.View(), "(unnamed)") {
		t.Fatalf("unnamed client not shown")
	}
}

func TestClients_DeleteNeedsConfirmation(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Workspace.AddClient(context.Background()); err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	m := NewClientsModel(a).(*ClientsModel)
	m.Update(m.Init()())

	m.Update(keyPress("d"))
	m.Update(keyPress("n"))
	if len(a.Workspace.Clients()) != 1 || m.mode != clientModeList {
		t.Fatalf("cancelled delete removed the client")
	}

	m.Update(keyPress("d"))
	m.Update(send(t, m, keyPress("y")))
	if len(a.Workspace.Clients()) != 0 {
		t.Fatalf("client not deleted")
	}
}

func TestCompany_Edit(t *testing.T) {
	a := newTestApp(t)
	m := NewCompanyModel(a).(*CompanyModel)

	m.Update(keyPress("enter"))
	if !m.IsCapturingInput() {
		t.Fatalf("edit form not open")
	}
	if got := m.form.value(companyFieldName); got != domain.DefaultCompany().Name {
		t.Fatalf("form not prefilled, name = %q", got)
	}

	m.form.fields[companyFieldName].SetValue("Eurl Nour")
	m.Update(send(t, m, keyPress("ctrl+s")))

	if m.IsCapturingInput() || m.statusMsg == "" {
		t.Fatalf("form still open after save")
	}
	if a.Workspace.Company().Name != "Eurl Nour" || a.Workspace.Current().Company.Name != "Eurl Nour" {
		t.Fatalf("company not saved or not applied to the invoice")
	}
	if !strings.Contains(m.View(), "Eurl Nour") {
		t.Fatalf("view does not show the new name")
	}
}

func TestArchive_OpenDeleteExport(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	if _, err := a.Workspace.SaveToArchive(ctx); err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	number := a.Workspace.Current().InvoiceNumber

	m := NewArchiveModel(a).(*ArchiveModel)
	m.Update(m.Init()())
	if len(m.invoices) != 1 {
		t.Fatalf("archive has %d invoices", len(m.invoices))
	}

	if _, ok := send(t, m, keyPress("enter")).(invoiceChangedMsg); !ok {
		t.Fatalf("open did not report an invoice change")
	}

	m.Update(send(t, m, keyPress("x")))
	if _, err := os.Stat(filepath.Join(a.Config.Invoice.OutputDir, "facture-2026-142.pdf")); err != nil {
		t.Fatalf("pdf not written: %v (status %q, err %v)", err, m.statusMsg, m.err)
	}

	m.Update(keyPress("d"))
	if !m.IsCapturingInput() {
		t.Fatalf("expected confirmation")
	}
	m.Update(send(t, m, keyPress("y")))
	if m.statusMsg != "Deleted invoice "+number || len(a.Workspace.Archive()) != 0 {
		t.Fatalf("status = %q archive = %d", m.statusMsg, len(a.Workspace.Archive()))
	}
}

func TestPreview_TogglesDeliveryNote(t *testing.T) {
	a := newTestApp(t)
	m := NewPreviewModel(a, 160, 200).(*PreviewModel)
	m.Update(m.Init()())

	if !strings.Contains(m.View(), "FACTURE") {
		t.Fatalf("invoice preview missing title:\n%s", m.View())
	}
	m.Update(keyPress("tab"))
	if !m.delivery || !strings.Contains(m.View(), "BON DE LIVRAISON") {
		t.Fatalf("delivery note not shown:\n%s", m.View())
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"12.5", 12.5, false},
		{"12,5", 12.5, false},
		{"1 500", 1500, false},
		{"-3", -3, false},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseNumber(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("Développement", 8); got != "Dével..." {
		t.Errorf("got %q", got)
	}
	if got := truncateStr("court", 10); got != "court" {
		t.Errorf("got %q", got)
	}
}
