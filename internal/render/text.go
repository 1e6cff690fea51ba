package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// minDeliveryRows is the least number of rows in a delivery note table
const minDeliveryRows = 3

var (
	inkColor    = lipgloss.Color("252")
	accentColor = lipgloss.Color("205") // Pink
	mutedColor  = lipgloss.Color("241") // Gray

	companyStyle = lipgloss.NewStyle().Bold(true).Foreground(inkColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	docTitle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false)
	labelStyle = lipgloss.NewStyle().Foreground(mutedColor).Width(22)
	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell       = lipgloss.NewStyle().Padding(0, 1)
	numberCell = cell.Align(lipgloss.Right)
)

// Text writes the invoice as styled terminal text
func Text(w io.Writer, doc Document) error {
	inv := doc.Invoice
	var b strings.Builder

	b.WriteString(companyHeader(doc))
	b.WriteString("\n\n")
	b.WriteString(docTitle.Render("FACTURE N° " + inv.InvoiceNumber))
	b.WriteString("\n\n")

	b.WriteString(field("Date", Date(inv.Date)))
	b.WriteString(field("Échéance", Date(inv.DueDate)))
	b.WriteString(field("Mode de paiement", PaymentLabel(inv.PaymentMethod)))
	b.WriteString("\n")
	b.WriteString(clientBlock("Client", doc, true))
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("#", "Désignation", "Qté", "Prix unitaire", "Montant").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCell
			case col == 1:
				return cell
			default:
				return numberCell
			}
		})
	for i, item := range inv.Items {
		t.Row(strconv.Itoa(i+1), item.Description, Quantity(item.Quantity), Amount(item.Price), Amount(item.Amount()))
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")

	tot := doc.Totals
	b.WriteString(field("Total HT", Money(tot.Subtotal)))
	b.WriteString(field("TVA "+Percent(inv.TVARate), Money(tot.TaxAmount)))
	if tot.StampDuty > 0 {
		b.WriteString(field("Droit de timbre", Money(tot.StampDuty)))
	}
	b.WriteString(labelStyle.Render("Total TTC") + totalStyle.Render(Money(tot.Total)) + "\n\n")

	b.WriteString(AmountInWords(tot.Total) + "\n")
	if c := inv.Company; c.BankName != "" || c.BankAccount != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Banque : %s  Compte : %s", c.BankName, c.BankAccount)) + "\n")
	}
	if inv.Notes != "" {
		b.WriteString("\n" + mutedStyle.Render(inv.Notes) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DeliveryNoteText writes the delivery note for the invoice: same items,
// quantities only, with signature blocks for both parties
func DeliveryNoteText(w io.Writer, doc Document) error {
	inv := doc.Invoice
	var b strings.Builder

	b.WriteString(companyHeader(doc))
	b.WriteString("\n\n")
	b.WriteString(docTitle.Render("BON DE LIVRAISON N° " + inv.InvoiceNumber))
	b.WriteString("\n\n")
	b.WriteString(field("Date de livraison", Date(inv.Date)))
	b.WriteString("\n")
	b.WriteString(clientBlock("Destinataire", doc, false))
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("#", "Désignation", "Quantité livrée").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCell
			case col == 1:
				return cell
			default:
				return numberCell
			}
		})
	for _, row := range deliveryRows(doc) {
		t.Row(row[0], row[1], row[2])
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")

	left := lipgloss.NewStyle().Width(36).Render("Signature du livreur\n\n\n____________________")
	right := lipgloss.NewStyle().Width(36).Render("Signature du destinataire\n\n\n____________________")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// deliveryRows returns the item rows padded with blank rows
func deliveryRows(doc Document) [][3]string {
	rows := make([][3]string, 0, max(len(doc.Invoice.Items), minDeliveryRows))
	for i, item := range doc.Invoice.Items {
		rows = append(rows, [3]string{strconv.Itoa(i + 1), item.Description, Quantity(item.Quantity)})
	}
	for len(rows) < minDeliveryRows {
		rows = append(rows, [3]string{})
	}
	return rows
}

func companyHeader(doc Document) string {
	c := doc.Invoice.Company
	lines := []string{
		companyStyle.Render(c.Name),
		mutedStyle.Render(c.Address + "  Tél : " + c.Phone),
		mutedStyle.Render(fmt.Sprintf("RC : %s  NIF : %s  NIS : %s  AI : %s", c.RC, c.NIF, c.NIS, c.AI)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func clientBlock(title string, doc Document, withNIF bool) string {
	c := doc.Invoice.Client
	var b strings.Builder
	b.WriteString(mutedStyle.Render(title) + "\n")
	b.WriteString(companyStyle.Render(c.Name) + "\n")
	if c.Address != "" {
		b.WriteString(c.Address + "\n")
	}
	if c.Phone != "" {
		b.WriteString("Tél : " + c.Phone + "\n")
	}
	if withNIF && c.NIF != "" {
		b.WriteString("NIF : " + c.NIF + "\n")
	}
	return b.String()
}

func field(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}
