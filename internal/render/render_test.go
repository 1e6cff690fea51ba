package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/fatoura/internal/domain"
)

func sampleInvoice() domain.InvoiceData {
	d, _ := domain.ParseDate("2026-03-14")
	return domain.InvoiceData{
		ID:            "inv-1",
		InvoiceNumber: "2026/142",
		Date:          d,
		DueDate:       d.AddDays(30),
		Company:       domain.DefaultCompany(),
		Client:        domain.ClientInfo{ID: "c1", Name: "Sarl Atlas", Address: "Oran", NIF: "0991"},
		Items: []domain.InvoiceItem{
			{ID: "a", Description: "Papier A4", Price: 500, Quantity: 2},
			{ID: "b", Description: "Toner", Price: 250.5, Quantity: 1},
		},
		TVARate:       19,
		PaymentMethod: domain.PaymentCash,
		Notes:         "Merci de votre confiance",
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money", Money(12.5), "12,50 DA"},
		{"money rounds half up", Money(0.125), "0,13 DA"},
		{"date", Date(sampleInvoice().Date), "14/03/2026"},
		{"zero date", Date(domain.Date{}), ""},
		{"cash", PaymentLabel(domain.PaymentCash), "Espèces"},
		{"transfer", PaymentLabel(domain.PaymentTransfer), "Virement bancaire"},
		{"check", PaymentLabel(domain.PaymentCheck), "Chèque"},
		{"words", AmountInWords(10), "Arrêtée la présente facture à la somme de : 10,00 DA."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestAmount_GroupsThousandsWithPlainSpace(t *testing.T) {
	got := Amount(1234567.891)
	if strings.ContainsRune(got, '\u00a0') || strings.ContainsRune(got, '\u202f') {
		t.Fatalf("no-break space left in %q", got)
	}
	if !strings.HasSuffix(got, ",89") {
		t.Fatalf("Amount = %q, want comma decimal with 2 places", got)
	}
}

func TestText(t *testing.T) {
	inv := sampleInvoice()
	var buf bytes.Buffer
	if err := Text(&buf, NewDocument(inv)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"FACTURE N° 2026/142",
		inv.Company.Name,
		"Sarl Atlas",
		"NIF : 0991",
		"Papier A4",
		"Toner",
		"Droit de timbre",
		"Espèces",
		"Arrêtée la présente facture",
		"Merci de votre confiance",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestText_NoStampDutyLineWhenZero(t *testing.T) {
	inv := sampleInvoice()
	inv.PaymentMethod = domain.PaymentTransfer

	var buf bytes.Buffer
	if err := Text(&buf, NewDocument(inv)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if strings.Contains(buf.String(), "Droit de timbre") {
		t.Fatal("stamp duty line printed for a transfer invoice")
	}
}

func TestDeliveryNoteText(t *testing.T) {
	inv := sampleInvoice()
	var buf bytes.Buffer
	if err := DeliveryNoteText(&buf, NewDocument(inv)); err != nil {
		t.Fatalf("DeliveryNoteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"BON DE LIVRAISON N° 2026/142", "Destinataire", "Papier A4", "Signature du destinataire"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, unwanted := range []string{"Prix unitaire", "Total TTC", "NIF : 0991"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("delivery note should not show %q", unwanted)
		}
	}
}

func TestDeliveryRows_PadsShortLists(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = inv.Items[:1]

	rows := deliveryRows(NewDocument(inv))
	if len(rows) != minDeliveryRows {
		t.Fatalf("rows = %d, want %d", len(rows), minDeliveryRows)
	}
	if rows[0][1] != "Papier A4" || rows[0][2] != "2" {
		t.Errorf("first row = %v", rows[0])
	}
	if rows[2] != ([3]string{}) {
		t.Errorf("filler row not blank: %v", rows[2])
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, NewDocument(sampleInvoice())); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestPDF_EmptyInvoice(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, NewDocument(domain.InvoiceData{})); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty output")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(domain.InvoiceData{InvoiceNumber: "2026/142"}); got != "facture-2026-142.pdf" {
		t.Errorf("got %q", got)
	}
	if got := FileName(domain.InvoiceData{ID: "0123456789"}); got != "facture-01234567.pdf" {
		t.Errorf("got %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "facture.pdf")
	if err := WriteFile(path, NewDocument(sampleInvoice())); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", data[:min(len(data), 8)])
	}
}
