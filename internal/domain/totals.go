package domain

// Stamp duty (droit de timbre) applies to cash-settled invoices only
const (
	StampDutyRate = 0.01
	StampDutyMin  = 5.0
	StampDutyMax  = 10000.0
)

// Totals holds the derived amounts of an invoice
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	StampDuty float64
	Total     float64
}

// CalculateTotals computes subtotal, TVA, stamp duty and grand total.
// Inputs are not validated: negative prices or quantities flow through.
func CalculateTotals(items []InvoiceItem, tvaRate float64, method PaymentMethod) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += item.Price * item.Quantity
	}
	t.TaxAmount = t.Subtotal * (tvaRate / 100)
	t.StampDuty = StampDuty(t.Subtotal+t.TaxAmount, method)
	t.Total = t.Subtotal + t.TaxAmount + t.StampDuty
	return t
}

// StampDuty returns 1% of amount clamped to [StampDutyMin, StampDutyMax] for
// cash payments and 0 otherwise. The floor is applied before the ceiling.
func StampDuty(amount float64, method PaymentMethod) float64 {
	if method != PaymentCash {
		return 0
	}
	return min(max(amount*StampDutyRate, StampDutyMin), StampDutyMax)
}
