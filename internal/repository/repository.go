package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andy/fatoura/internal/domain"
)

// Slot keys. Each slot holds one JSON document and is written whole.
const (
	KeyCompany = "company_profile"
	KeyClients = "client_roster"
	KeyArchive = "invoice_archive"
	KeyDraft   = "editor_draft"
)

// Store is a string-keyed blob store. Implementations are last-write-wins
// and keep no history.
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Load decodes the slot at key into a T, returning def when the slot is missing
func Load[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	b, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		log.Debugf("Slot %s missing, using default", key)
		return def, nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return def, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, nil
}

// Save encodes v as JSON and writes it to the slot at key
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, b); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	log.Tracef("Saved %s (%d bytes)", key, len(b))
	return nil
}

// Clearer deletes a slot so the next load returns its default
type Clearer interface {
	Clear(ctx context.Context) error
}

// CompanyRepository persists the single company profile
type CompanyRepository interface {
	Get(ctx context.Context) (domain.CompanyInfo, error) // Built-in default if never saved
	Save(ctx context.Context, company domain.CompanyInfo) error
	Clearer
}

// ClientRepository persists the client roster as an ordered list
type ClientRepository interface {
	List(ctx context.Context) ([]domain.ClientInfo, error)
	Save(ctx context.Context, clients []domain.ClientInfo) error
	Clearer
}

// ArchiveRepository persists archived invoices, most recent first
type ArchiveRepository interface {
	List(ctx context.Context) ([]domain.InvoiceData, error)
	Save(ctx context.Context, archive []domain.InvoiceData) error
	Clearer
}

// DraftRepository persists the invoice open in the editor
type DraftRepository interface {
	Get(ctx context.Context) (domain.InvoiceData, bool, error) // false if no draft saved
	Save(ctx context.Context, draft domain.InvoiceData) error
	Clearer
}
