package service

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/domain"
)

// Current returns a copy of the invoice being edited
func (w *Workspace) Current() domain.InvoiceData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Current.Clone()
}

// Totals returns the live totals of the invoice being edited
func (w *Workspace) Totals() domain.Totals {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Current.Totals()
}

// NewInvoice replaces the live invoice with a fresh one. Unsaved edits to
// the previous invoice are discarded.
func (w *Workspace) NewInvoice(ctx context.Context) (domain.InvoiceData, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		*inv = w.factory.NewInvoice(w.state.Company)
		return nil
	})
	if err != nil {
		return domain.InvoiceData{}, err
	}
	log.Infof("New invoice %s", w.state.Current.InvoiceNumber)
	return w.state.Current.Clone(), nil
}

func (w *Workspace) SetInvoiceNumber(ctx context.Context, number string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.InvoiceNumber = number
		return nil
	})
}

func (w *Workspace) SetDate(ctx context.Context, d domain.Date) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.Date = d
		return nil
	})
}

func (w *Workspace) SetDueDate(ctx context.Context, d domain.Date) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.DueDate = d
		return nil
	})
}

// SetTVARate sets the VAT percentage. Any value is accepted.
func (w *Workspace) SetTVARate(ctx context.Context, rate float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.TVARate = rate
		return nil
	})
}

func (w *Workspace) SetPaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.PaymentMethod = pm
		return nil
	})
}

func (w *Workspace) SetNotes(ctx context.Context, notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.Notes = notes
		return nil
	})
}

// UpdateInvoiceClient edits the client snapshot on the invoice only.
// The roster entry it was copied from is left alone.
func (w *Workspace) UpdateInvoiceClient(ctx context.Context, updates ...domain.ClientUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.Client.Apply(updates...)
		return nil
	})
}

// InvoiceHeader is every non-item field of the live invoice, edited as one
type InvoiceHeader struct {
	Number        string
	Date          domain.Date
	DueDate       domain.Date
	TVARate       float64
	PaymentMethod domain.PaymentMethod
	Notes         string
	Client        []domain.ClientUpdate
}

// SetHeader replaces the header fields and the client snapshot in a single
// write, so either all of them are saved or none is.
func (w *Workspace) SetHeader(ctx context.Context, h InvoiceHeader) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.InvoiceNumber = h.Number
		inv.Date = h.Date
		inv.DueDate = h.DueDate
		inv.TVARate = h.TVARate
		inv.PaymentMethod = h.PaymentMethod
		inv.Notes = h.Notes
		inv.Client.Apply(h.Client...)
		return nil
	})
}

// AddItem appends a blank line item and returns it
func (w *Workspace) AddItem(ctx context.Context) (domain.InvoiceItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var item domain.InvoiceItem
	err := w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		item = inv.AddItem(w.factory.NewID())
		return nil
	})
	return item, err
}

func (w *Workspace) UpdateItem(ctx context.Context, id string, updates ...domain.ItemUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		return inv.UpdateItem(id, updates...)
	})
}

func (w *Workspace) RemoveItem(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		return inv.RemoveItem(id)
	})
}

// SelectClient copies the roster client with the given id onto the invoice
func (w *Workspace) SelectClient(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	client, ok := domain.FindClient(w.state.Clients, id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrClientNotFound, id)
	}
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.AttachClient(client)
		return nil
	})
}

// SaveToArchive upserts the live invoice into the archive. A duplicate
// invoice number leaves both the archive and storage untouched.
func (w *Workspace) SaveToArchive(ctx context.Context) (domain.SaveOutcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.opened {
		return 0, ErrNotOpen
	}
	res, err := domain.SaveToArchive(w.state.Archive, w.state.Current)
	if err != nil {
		log.Warnf("Archive save rejected: %v", err)
		return 0, err
	}
	if err := w.saveArchive(ctx, res.Archive); err != nil {
		return 0, err
	}
	log.Infof("Invoice %s %s in archive (total %.2f)", res.Saved.InvoiceNumber, res.Outcome, *res.Saved.Total)
	return res.Outcome, nil
}

// OpenFromArchive loads a copy of an archived invoice into the editor
func (w *Workspace) OpenFromArchive(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	archived, err := domain.FindInArchive(w.state.Archive, id)
	if err != nil {
		return err
	}
	return w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		*inv = archived
		return nil
	})
}
