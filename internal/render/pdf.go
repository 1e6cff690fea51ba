package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// pdfRows pads item tables so that short invoices still fill the page
const pdfRows = 12

type pdfDoc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	doc Document
}

// PDF writes the invoice followed by its delivery note on a new page.
// Text is encoded as cp1252 so the core Helvetica font can print accents.
func PDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Facture "+doc.Invoice.InvoiceNumber, true)
	pdf.SetCreator("fatoura", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	p := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), doc: doc}
	p.invoicePage()
	p.deliveryPage()

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	log.Debugf("Rendered PDF for invoice %s", doc.Invoice.InvoiceNumber)
	return nil
}

func (p *pdfDoc) text(w, h float64, s, border string, ln int, align string, fill bool) {
	p.pdf.CellFormat(w, h, p.tr(s), border, ln, align, fill, 0, "")
}

func (p *pdfDoc) header(title string) {
	pdf := p.pdf
	c := p.doc.Invoice.Company

	pdf.SetFont("Helvetica", "B", 18)
	p.text(0, 9, c.Name, "", 1, "C", false)
	pdf.SetFont("Helvetica", "", 9)
	p.text(0, 5, c.Address+" | Tél : "+c.Phone, "", 1, "C", false)
	p.text(0, 5, fmt.Sprintf("RC : %s   NIF : %s   NIS : %s   AI : %s", c.RC, c.NIF, c.NIS, c.AI), "", 1, "C", false)
	pdf.Ln(4)

	pdf.SetFillColor(33, 33, 33)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	p.text(0, 10, title+" N° "+p.doc.Invoice.InvoiceNumber, "", 1, "C", true)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func (p *pdfDoc) party(title string, withNIF bool) {
	pdf := p.pdf
	c := p.doc.Invoice.Client

	pdf.SetFont("Helvetica", "B", 9)
	p.text(0, 5, title, "", 1, "L", false)
	pdf.SetFont("Helvetica", "B", 12)
	p.text(0, 6, c.Name, "", 1, "L", false)
	pdf.SetFont("Helvetica", "", 10)
	if c.Address != "" {
		p.text(0, 5, c.Address, "", 1, "L", false)
	}
	if c.Phone != "" {
		p.text(0, 5, "Tél : "+c.Phone, "", 1, "L", false)
	}
	if withNIF && c.NIF != "" {
		p.text(0, 5, "NIF : "+c.NIF, "", 1, "L", false)
	}
	pdf.Ln(3)
}

func (p *pdfDoc) invoicePage() {
	pdf := p.pdf
	inv := p.doc.Invoice
	tot := p.doc.Totals

	pdf.AddPage()
	p.header("FACTURE")

	pdf.SetFont("Helvetica", "", 10)
	p.text(90, 6, "Date : "+Date(inv.Date), "", 0, "L", false)
	p.text(0, 6, "Échéance : "+Date(inv.DueDate), "", 1, "R", false)
	p.text(0, 6, "Mode de paiement : "+PaymentLabel(inv.PaymentMethod), "", 1, "L", false)
	pdf.Ln(2)
	p.party("CLIENT", true)

	widths := []float64{10, 85, 20, 32.5, 32.5}
	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Désignation", "Qté", "Prix unitaire", "Montant"} {
		p.text(widths[i], 8, h, "1", 0, "C", true)
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, item := range inv.Items {
		p.text(widths[0], 7, strconv.Itoa(i+1), "LR", 0, "C", false)
		p.text(widths[1], 7, item.Description, "LR", 0, "L", false)
		p.text(widths[2], 7, Quantity(item.Quantity), "LR", 0, "R", false)
		p.text(widths[3], 7, Amount(item.Price), "LR", 0, "R", false)
		p.text(widths[4], 7, Amount(item.Amount()), "LR", 1, "R", false)
	}
	for i := len(inv.Items); i < pdfRows; i++ {
		for j, w := range widths {
			ln := 0
			if j == len(widths)-1 {
				ln = 1
			}
			p.text(w, 7, "", "LR", ln, "", false)
		}
	}
	pdf.CellFormat(180, 0, "", "T", 1, "", false, 0, "")
	pdf.Ln(4)

	line := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetX(105)
		p.text(45, 7, label, "", 0, "L", false)
		p.text(45, 7, value, "", 1, "R", false)
	}
	line("Total HT", Money(tot.Subtotal), false)
	line("TVA "+Percent(inv.TVARate), Money(tot.TaxAmount), false)
	if tot.StampDuty > 0 {
		line("Droit de timbre", Money(tot.StampDuty), false)
	}
	line("Total TTC", Money(tot.Total), true)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, p.tr(AmountInWords(tot.Total)), "", "L", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 9)
	if inv.Company.BankName != "" || inv.Company.BankAccount != "" {
		p.text(0, 5, "Banque : "+inv.Company.BankName+"   Compte : "+inv.Company.BankAccount, "", 1, "L", false)
	}
	if inv.Notes != "" {
		pdf.MultiCell(0, 5, p.tr(inv.Notes), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetX(120)
	pdf.SetFont("Helvetica", "B", 9)
	p.text(75, 5, "Cachet et signature", "", 1, "C", false)
}

func (p *pdfDoc) deliveryPage() {
	pdf := p.pdf
	inv := p.doc.Invoice

	pdf.AddPage()
	p.header("BON DE LIVRAISON")

	pdf.SetFont("Helvetica", "", 10)
	p.text(0, 6, "Date de livraison : "+Date(inv.Date), "", 1, "R", false)
	p.party("DESTINATAIRE", false)

	widths := []float64{15, 125, 40}
	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Désignation", "Quantité livrée"} {
		p.text(widths[i], 8, h, "1", 0, "C", true)
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	rows := deliveryRows(p.doc)
	for i := len(rows); i < pdfRows; i++ {
		rows = append(rows, [3]string{})
	}
	for _, row := range rows {
		p.text(widths[0], 8, row[0], "LR", 0, "C", false)
		p.text(widths[1], 8, row[1], "LR", 0, "L", false)
		p.text(widths[2], 8, row[2], "LR", 1, "R", false)
	}
	pdf.CellFormat(180, 0, "", "T", 1, "", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	p.text(90, 5, "Signature du livreur", "", 0, "C", false)
	p.text(90, 5, "Signature du destinataire", "", 1, "C", false)
	pdf.Ln(18)
	p.text(90, 5, "____________________", "", 0, "C", false)
	p.text(90, 5, "____________________", "", 1, "C", false)
	pdf.SetFont("Helvetica", "I", 8)
	p.text(90, 5, "", "", 0, "C", false)
	p.text(90, 5, "Nom, prénom et date de réception", "", 1, "C", false)
}
