package service

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/domain"
)

// Archive returns copies of all archived invoices, most recent first
func (w *Workspace) Archive() []domain.InvoiceData {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]domain.InvoiceData, len(w.state.Archive))
	for i := range w.state.Archive {
		out[i] = w.state.Archive[i].Clone()
	}
	return out
}

func (w *Workspace) ArchivedInvoice(id string) (domain.InvoiceData, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.FindInArchive(w.state.Archive, id)
}

// DeleteFromArchive removes an archived invoice. The live invoice is not
// affected even if it was opened from that entry.
func (w *Workspace) DeleteFromArchive(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.opened {
		return ErrNotOpen
	}
	if _, err := domain.FindInArchive(w.state.Archive, id); err != nil {
		return err
	}
	if err := w.saveArchive(ctx, domain.RemoveFromArchive(w.state.Archive, id)); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}
	log.Infof("Deleted invoice %s from archive", id)
	return nil
}
