package domain

import (
	"errors"
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCheck    PaymentMethod = "CHECK"
)

// PaymentMethods lists the accepted methods in display order
var PaymentMethods = []PaymentMethod{PaymentTransfer, PaymentCheck, PaymentCash}

var (
	ErrItemNotFound         = errors.New("invoice item not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ParsePaymentMethod accepts CASH, TRANSFER or CHECK in any case
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	pm := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch pm {
	case PaymentCash, PaymentTransfer, PaymentCheck:
		return pm, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// Amount returns price * quantity
func (i InvoiceItem) Amount() float64 {
	return i.Price * i.Quantity
}

// InvoiceData is the invoice being edited or an archived one.
// Total is only set on archived invoices and is never recomputed once stored.
type InvoiceData struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          Date          `json:"date"`
	DueDate       Date          `json:"dueDate"`
	Company       CompanyInfo   `json:"company"`
	Client        ClientInfo    `json:"client"`
	Items         []InvoiceItem `json:"items"`
	TVARate       float64       `json:"tvaRate"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes"`
	Total         *float64      `json:"total,omitempty"`
}

// Clone returns a deep copy that shares no memory with the receiver
func (inv InvoiceData) Clone() InvoiceData {
	out := inv
	if inv.Items != nil {
		out.Items = make([]InvoiceItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	if inv.Total != nil {
		t := *inv.Total
		out.Total = &t
	}
	return out
}

// Totals computes the live totals of the invoice
func (inv InvoiceData) Totals() Totals {
	return CalculateTotals(inv.Items, inv.TVARate, inv.PaymentMethod)
}

// IsArchivedSnapshot reports whether a total has been recorded
func (inv InvoiceData) IsArchivedSnapshot() bool {
	return inv.Total != nil
}

// StoredTotal returns the total recorded at archive time, or the live total
// for an invoice that was never archived
func (inv InvoiceData) StoredTotal() float64 {
	if inv.IsArchivedSnapshot() {
		return *inv.Total
	}
	return inv.Totals().Total
}

// AttachClient copies c into the invoice. Later edits on either side do not
// affect the other.
func (inv *InvoiceData) AttachClient(c ClientInfo) {
	inv.Client = c
}

// AttachCompany copies the company profile into the invoice
func (inv *InvoiceData) AttachCompany(c CompanyInfo) {
	inv.Company = c
}

// AddItem appends a blank row with quantity 1
func (inv *InvoiceData) AddItem(id string) InvoiceItem {
	item := InvoiceItem{ID: id, Quantity: 1}
	inv.Items = append(inv.Items, item)
	return item
}

// UpdateItem applies updates to the item with the given id
func (inv *InvoiceData) UpdateItem(id string, updates ...ItemUpdate) error {
	idx := inv.itemIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	for _, u := range updates {
		u.applyItem(&inv.Items[idx])
	}
	return nil
}

// RemoveItem deletes the item with the given id. The list may become empty.
func (inv *InvoiceData) RemoveItem(id string) error {
	idx := inv.itemIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	items := make([]InvoiceItem, 0, len(inv.Items)-1)
	items = append(items, inv.Items[:idx]...)
	inv.Items = append(items, inv.Items[idx+1:]...)
	return nil
}

// Item returns the item with the given id
func (inv InvoiceData) Item(id string) (InvoiceItem, bool) {
	idx := inv.itemIndex(id)
	if idx < 0 {
		return InvoiceItem{}, false
	}
	return inv.Items[idx], true
}

func (inv InvoiceData) itemIndex(id string) int {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ItemUpdate changes a single field of a line item
type ItemUpdate interface {
	applyItem(item *InvoiceItem)
}

type SetDescription struct{ Value string }
type SetPrice struct{ Value float64 }
type SetQuantity struct{ Value float64 }

func (u SetDescription) applyItem(item *InvoiceItem) { item.Description = u.Value }
func (u SetPrice) applyItem(item *InvoiceItem)       { item.Price = u.Value }
func (u SetQuantity) applyItem(item *InvoiceItem)    { item.Quantity = u.Value }
