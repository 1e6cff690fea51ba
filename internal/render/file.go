package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/fatoura/internal/domain"
)

// FileName turns invoice number "2026/142" into "facture-2026-142.pdf".
// Invoices without a number fall back to the first characters of the ID.
func FileName(inv domain.InvoiceData) string {
	number := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' || r == ':' {
			return '-'
		}
		return r
	}, inv.InvoiceNumber)
	if number == "" {
		number = inv.ID
		if len(number) > 8 {
			number = number[:8]
		}
	}
	return "facture-" + number + ".pdf"
}

// WriteFile renders doc as a PDF at path, creating the directory if needed
func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := PDF(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Infof("Exported invoice %s to %s", doc.Invoice.InvoiceNumber, path)
	return nil
}
