package repository

import (
	"context"

	"github.com/andy/fatoura/internal/domain"
)

// CompanyRepo stores the company profile in the KeyCompany slot
type CompanyRepo struct {
	store Store
}

func NewCompanyRepo(s Store) *CompanyRepo {
	return &CompanyRepo{store: s}
}

func (r *CompanyRepo) Get(ctx context.Context) (domain.CompanyInfo, error) {
	return Load(ctx, r.store, KeyCompany, domain.DefaultCompany())
}

func (r *CompanyRepo) Save(ctx context.Context, company domain.CompanyInfo) error {
	return Save(ctx, r.store, KeyCompany, company)
}

func (r *CompanyRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeyCompany)
}

// ClientRepo stores the roster in the KeyClients slot
type ClientRepo struct {
	store Store
}

func NewClientRepo(s Store) *ClientRepo {
	return &ClientRepo{store: s}
}

func (r *ClientRepo) List(ctx context.Context) ([]domain.ClientInfo, error) {
	clients, err := Load(ctx, r.store, KeyClients, []domain.ClientInfo{})
	if clients == nil {
		clients = []domain.ClientInfo{}
	}
	return clients, err
}

func (r *ClientRepo) Save(ctx context.Context, clients []domain.ClientInfo) error {
	if clients == nil {
		clients = []domain.ClientInfo{}
	}
	return Save(ctx, r.store, KeyClients, clients)
}

func (r *ClientRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeyClients)
}

// ArchiveRepo stores archived invoices in the KeyArchive slot
type ArchiveRepo struct {
	store Store
}

func NewArchiveRepo(s Store) *ArchiveRepo {
	return &ArchiveRepo{store: s}
}

func (r *ArchiveRepo) List(ctx context.Context) ([]domain.InvoiceData, error) {
	archive, err := Load(ctx, r.store, KeyArchive, []domain.InvoiceData{})
	if archive == nil {
		archive = []domain.InvoiceData{}
	}
	return archive, err
}

func (r *ArchiveRepo) Save(ctx context.Context, archive []domain.InvoiceData) error {
	if archive == nil {
		archive = []domain.InvoiceData{}
	}
	return Save(ctx, r.store, KeyArchive, archive)
}

func (r *ArchiveRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeyArchive)
}

// DraftRepo stores the editor invoice in the KeyDraft slot
type DraftRepo struct {
	store Store
}

func NewDraftRepo(s Store) *DraftRepo {
	return &DraftRepo{store: s}
}

func (r *DraftRepo) Get(ctx context.Context) (domain.InvoiceData, bool, error) {
	var zero domain.InvoiceData
	draft, err := Load(ctx, r.store, KeyDraft, zero)
	if err != nil {
		return zero, false, err
	}
	return draft, draft.ID != "", nil
}

func (r *DraftRepo) Save(ctx context.Context, draft domain.InvoiceData) error {
	return Save(ctx, r.store, KeyDraft, draft)
}

func (r *DraftRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeyDraft)
}
