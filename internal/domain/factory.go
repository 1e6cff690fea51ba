package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Defaults for new invoices
const (
	DefaultTVARate       = 19.0
	DefaultDueDays       = 30
	DefaultPaymentMethod = PaymentTransfer
	DefaultNotes         = "Cette facture tient lieu de contrat de vente entre les deux parties."
)

// Factory creates fresh invoices. Its clock, id source and random source are
// injectable so that tests are deterministic.
type Factory struct {
	Now   func() time.Time
	NewID func() string
	// Intn returns a number in [0, n)
	Intn func(n int) int

	TVARate       float64
	DueDays       int
	PaymentMethod PaymentMethod
	Notes         string
}

// DefaultFactory uses the wall clock, random UUIDs and the default invoice settings
func DefaultFactory() *Factory {
	return &Factory{
		Now:           time.Now,
		NewID:         NewID,
		Intn:          rand.Intn,
		TVARate:       DefaultTVARate,
		DueDays:       DefaultDueDays,
		PaymentMethod: DefaultPaymentMethod,
		Notes:         DefaultNotes,
	}
}

// NewID returns a random UUID string
func NewID() string {
	return uuid.NewString()
}

// NewInvoice returns a blank invoice issued by company. The generated number
// may collide with an archived one; that is only checked on save.
func (f *Factory) NewInvoice(company CompanyInfo) InvoiceData {
	today := NewDate(f.Now())
	return InvoiceData{
		ID:            f.NewID(),
		InvoiceNumber: f.NewInvoiceNumber(),
		Date:          today,
		DueDate:       today.AddDays(f.DueDays),
		Company:       company,
		Client:        ClientInfo{},
		Items:         []InvoiceItem{{ID: f.NewID(), Price: 0, Quantity: 1}},
		TVARate:       f.TVARate,
		PaymentMethod: f.PaymentMethod,
		Notes:         f.Notes,
	}
}

// NewInvoiceNumber returns "<year>/<nnn>" with nnn in [100, 999]
func (f *Factory) NewInvoiceNumber() string {
	return fmt.Sprintf("%d/%d", f.Now().Year(), 100+f.Intn(900))
}
