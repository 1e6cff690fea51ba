// Package render turns invoices into printable documents: styled terminal
// text for previews and a PDF for printing. It never computes money itself;
// callers pass the totals in a Document.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/andy/fatoura/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is appended to every amount
const Currency = "DA"

const displayDateLayout = "02/01/2006"

var printer = message.NewPrinter(language.MustParse("fr-DZ"))

// Document is everything needed to render an invoice and its delivery note
type Document struct {
	Invoice domain.InvoiceData
	Totals  domain.Totals
}

// NewDocument pairs an invoice with its live totals
func NewDocument(inv domain.InvoiceData) Document {
	return Document{Invoice: inv, Totals: inv.Totals()}
}

// Money formats v rounded half-up to two decimals with French grouping
// and the currency suffix, e.g. "1 234,50 DA"
func Money(v float64) string {
	return Amount(v) + " " + Currency
}

// Amount is Money without the currency suffix
func Amount(v float64) string {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return plainSpaces(printer.Sprintf("%.2f", f))
}

// Quantity formats a quantity with up to three decimals and no padding
func Quantity(q float64) string {
	return plainSpaces(printer.Sprint(number.Decimal(q, number.MaxFractionDigits(3))))
}

// Percent formats a rate as "19 %"
func Percent(rate float64) string {
	return Quantity(rate) + " %"
}

// Date formats a calendar day as DD/MM/YYYY, or "" for the zero date
func Date(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(displayDateLayout)
}

// PaymentLabel returns the printed label for a payment method
func PaymentLabel(pm domain.PaymentMethod) string {
	switch pm {
	case domain.PaymentCash:
		return "Espèces"
	case domain.PaymentTransfer:
		return "Virement bancaire"
	case domain.PaymentCheck:
		return "Chèque"
	default:
		return string(pm)
	}
}

// AmountInWords is the closing sentence printed under the totals
func AmountInWords(total float64) string {
	return fmt.Sprintf("Arrêtée la présente facture à la somme de : %s.", Money(total))
}

// plainSpaces replaces the locale's no-break group separators with ASCII
// spaces so that PDF core fonts can encode them
func plainSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, s)
}
