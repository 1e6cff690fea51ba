package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists in archive")
	ErrInvoiceNotFound        = errors.New("invoice not found in archive")
)

// SaveOutcome tells whether an archive save inserted or replaced an entry
type SaveOutcome int

const (
	OutcomeInserted SaveOutcome = iota + 1
	OutcomeUpdated
)

func (o SaveOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// ArchiveResult is the outcome of a successful SaveToArchive
type ArchiveResult struct {
	Archive []InvoiceData
	Outcome SaveOutcome
	Saved   InvoiceData
}

// SaveToArchive upserts candidate by ID and returns the new archive.
//
// A candidate whose number is held by another invoice is rejected with
// ErrDuplicateInvoiceNumber. The input slice is never modified, so on error
// the caller's archive is exactly as it was. An existing entry is replaced in
// place; a new one goes to the front. The saved copy carries a total snapshot.
func SaveToArchive(archive []InvoiceData, candidate InvoiceData) (ArchiveResult, error) {
	existing := -1
	for i := range archive {
		if archive[i].InvoiceNumber == candidate.InvoiceNumber && archive[i].ID != candidate.ID {
			return ArchiveResult{}, fmt.Errorf("%w: %s", ErrDuplicateInvoiceNumber, candidate.InvoiceNumber)
		}
		if archive[i].ID == candidate.ID && existing < 0 {
			existing = i
		}
	}

	saved := candidate.Clone()
	total := saved.Totals().Total
	saved.Total = &total

	if existing >= 0 {
		out := make([]InvoiceData, len(archive))
		copy(out, archive)
		out[existing] = saved
		return ArchiveResult{Archive: out, Outcome: OutcomeUpdated, Saved: saved.Clone()}, nil
	}

	out := make([]InvoiceData, 0, len(archive)+1)
	out = append(out, saved)
	out = append(out, archive...)
	return ArchiveResult{Archive: out, Outcome: OutcomeInserted, Saved: saved.Clone()}, nil
}

// FindInArchive returns a clone of the archived invoice with the given id
func FindInArchive(archive []InvoiceData, id string) (InvoiceData, error) {
	for i := range archive {
		if archive[i].ID == id {
			return archive[i].Clone(), nil
		}
	}
	return InvoiceData{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, id)
}

// RemoveFromArchive returns the archive without the given invoice. Removing
// an unknown id returns an unchanged copy.
func RemoveFromArchive(archive []InvoiceData, id string) []InvoiceData {
	out := make([]InvoiceData, 0, len(archive))
	for i := range archive {
		if archive[i].ID != id {
			out = append(out, archive[i])
		}
	}
	return out
}
