package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/repository"
)

var ErrNotOpen = errors.New("workspace not opened")

// Repositories groups the persistence slots the workspace writes through
type Repositories struct {
	Company repository.CompanyRepository
	Clients repository.ClientRepository
	Archive repository.ArchiveRepository
	Draft   repository.DraftRepository
}

// NewRepositories builds all slot repositories over a single store
func NewRepositories(store repository.Store) Repositories {
	return Repositories{
		Company: repository.NewCompanyRepo(store),
		Clients: repository.NewClientRepo(store),
		Archive: repository.NewArchiveRepo(store),
		Draft:   repository.NewDraftRepo(store),
	}
}

// State is everything the operator works with in one session
type State struct {
	Company domain.CompanyInfo
	Clients []domain.ClientInfo
	Archive []domain.InvoiceData
	Current domain.InvoiceData
}

func (s State) clone() State {
	out := State{
		Company: s.Company,
		Clients: append([]domain.ClientInfo(nil), s.Clients...),
		Archive: make([]domain.InvoiceData, len(s.Archive)),
		Current: s.Current.Clone(),
	}
	for i := range s.Archive {
		out.Archive[i] = s.Archive[i].Clone()
	}
	return out
}

// Workspace holds the session state and writes every change through to its
// repositories. A change is committed to memory only after it was persisted,
// so a failed write leaves its slot as it was. Each operation writes one
// slot, except UpdateCompany which writes the profile and then the invoice.
//
// Workspace is safe for concurrent use.
type Workspace struct {
	mu      sync.Mutex
	repos   Repositories
	factory *domain.Factory
	state   State
	opened  bool
}

// NewWorkspace creates a workspace. Call Open before anything else.
func NewWorkspace(repos Repositories, factory *domain.Factory) *Workspace {
	if factory == nil {
		factory = domain.DefaultFactory()
	}
	return &Workspace{repos: repos, factory: factory}
}

// ConfigureFactory changes how later invoices are created. The live invoice
// is not touched.
func (w *Workspace) ConfigureFactory(apply func(f *domain.Factory)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	apply(w.factory)
}

// Open loads all slots. Without a saved draft a fresh invoice is created
// for the stored company and persisted.
func (w *Workspace) Open(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	company, err := w.repos.Company.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load company: %w", err)
	}
	clients, err := w.repos.Clients.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}
	archive, err := w.repos.Archive.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}
	draft, ok, err := w.repos.Draft.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	if !ok {
		draft = w.factory.NewInvoice(company)
		if err := w.repos.Draft.Save(ctx, draft); err != nil {
			return fmt.Errorf("failed to save draft: %w", err)
		}
		log.Debugf("Started new invoice %s", draft.InvoiceNumber)
	}

	w.state = State{Company: company, Clients: clients, Archive: archive, Current: draft}
	w.opened = true
	log.Infof("Workspace opened: %d clients, %d archived invoices", len(clients), len(archive))
	return nil
}

// Snapshot returns a deep copy of the whole session state
func (w *Workspace) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

// editCurrent applies fn to a copy of the live invoice, persists it and
// commits it on success
func (w *Workspace) editCurrent(ctx context.Context, fn func(inv *domain.InvoiceData) error) error {
	if !w.opened {
		return ErrNotOpen
	}
	inv := w.state.Current.Clone()
	if err := fn(&inv); err != nil {
		return err
	}
	if err := w.repos.Draft.Save(ctx, inv); err != nil {
		log.Errorf("Failed to save draft %s: %v", inv.ID, err)
		return fmt.Errorf("failed to save draft: %w", err)
	}
	w.state.Current = inv
	return nil
}

func (w *Workspace) saveClients(ctx context.Context, clients []domain.ClientInfo) error {
	if err := w.repos.Clients.Save(ctx, clients); err != nil {
		log.Errorf("Failed to save clients: %v", err)
		return fmt.Errorf("failed to save clients: %w", err)
	}
	w.state.Clients = clients
	return nil
}

func (w *Workspace) saveArchive(ctx context.Context, archive []domain.InvoiceData) error {
	if err := w.repos.Archive.Save(ctx, archive); err != nil {
		log.Errorf("Failed to save archive: %v", err)
		return fmt.Errorf("failed to save archive: %w", err)
	}
	w.state.Archive = archive
	return nil
}
