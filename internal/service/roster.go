package service

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/domain"
)

// Clients returns a copy of the roster in display order
func (w *Workspace) Clients() []domain.ClientInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.ClientInfo(nil), w.state.Clients...)
}

// Client looks up a roster entry by id
func (w *Workspace) Client(id string) (domain.ClientInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := domain.FindClient(w.state.Clients, id)
	if !ok {
		return domain.ClientInfo{}, fmt.Errorf("%w: %s", domain.ErrClientNotFound, id)
	}
	return c, nil
}

// AddClient puts a new client with the default name at the top of the roster
func (w *Workspace) AddClient(ctx context.Context) (domain.ClientInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.opened {
		return domain.ClientInfo{}, ErrNotOpen
	}
	c := domain.NewClient(w.factory.NewID())
	if err := w.saveClients(ctx, domain.AddToRoster(w.state.Clients, c)); err != nil {
		return domain.ClientInfo{}, err
	}
	log.Debugf("Added client %s", c.ID)
	return c, nil
}

// UpdateClient edits a roster entry. Invoices that already copied the
// client keep their snapshot.
func (w *Workspace) UpdateClient(ctx context.Context, id string, updates ...domain.ClientUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.opened {
		return ErrNotOpen
	}
	clients, err := domain.UpdateInRoster(w.state.Clients, id, updates...)
	if err != nil {
		return err
	}
	return w.saveClients(ctx, clients)
}

// DeleteClient removes a roster entry. Invoices keep their snapshot.
func (w *Workspace) DeleteClient(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.opened {
		return ErrNotOpen
	}
	clients, err := domain.RemoveFromRoster(w.state.Clients, id)
	if err != nil {
		return err
	}
	if err := w.saveClients(ctx, clients); err != nil {
		return err
	}
	log.Debugf("Deleted client %s", id)
	return nil
}
