package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/fatoura/internal/domain"
)

// ErrInvoiceNotRefreshed is returned by UpdateCompany when the profile was
// saved but the live invoice could not be written with it
var ErrInvoiceNotRefreshed = errors.New("company saved but the current invoice was not refreshed")

func (w *Workspace) Company() domain.CompanyInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Company
}

// UpdateCompany saves the profile and refreshes the snapshot on the live
// invoice. Archived invoices keep the profile they were saved with.
//
// The profile and the invoice are separate slots written one after the
// other. If the invoice write fails the saved profile stands, the live
// invoice keeps its previous company and the error wraps
// ErrInvoiceNotRefreshed.
func (w *Workspace) UpdateCompany(ctx context.Context, company domain.CompanyInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.opened {
		return ErrNotOpen
	}
	if err := w.repos.Company.Save(ctx, company); err != nil {
		log.Errorf("Failed to save company: %v", err)
		return fmt.Errorf("failed to save company: %w", err)
	}
	w.state.Company = company

	err := w.editCurrent(ctx, func(inv *domain.InvoiceData) error {
		inv.AttachCompany(company)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvoiceNotRefreshed, err)
	}
	return nil
}
