package domain

import (
	"errors"
	"fmt"
)

// DefaultClientName is given to clients added from an empty form
const DefaultClientName = "Nouveau client"

var ErrClientNotFound = errors.New("client not found")

// ClientInfo is a roster entry. It holds only value fields so that copying
// the struct yields an independent snapshot.
type ClientInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	NIF     string `json:"nif,omitempty"`
}

// NewClient creates a roster entry with the default name
func NewClient(id string) ClientInfo {
	return ClientInfo{ID: id, Name: DefaultClientName}
}

// IsBlank reports whether no client data has been entered
func (c ClientInfo) IsBlank() bool {
	return c == ClientInfo{}
}

// ClientUpdate changes one field of a client
type ClientUpdate interface {
	applyClient(c *ClientInfo)
}

type SetClientName struct{ Value string }
type SetClientAddress struct{ Value string }
type SetClientPhone struct{ Value string }
type SetClientNIF struct{ Value string }

func (u SetClientName) applyClient(c *ClientInfo)    { c.Name = u.Value }
func (u SetClientAddress) applyClient(c *ClientInfo) { c.Address = u.Value }
func (u SetClientPhone) applyClient(c *ClientInfo)   { c.Phone = u.Value }
func (u SetClientNIF) applyClient(c *ClientInfo)     { c.NIF = u.Value }

// Apply applies the updates in order
func (c *ClientInfo) Apply(updates ...ClientUpdate) {
	for _, u := range updates {
		u.applyClient(c)
	}
}

// Roster helpers. Each returns a new slice and never mutates the input.

// AddToRoster prepends a client, newest first
func AddToRoster(roster []ClientInfo, c ClientInfo) []ClientInfo {
	out := make([]ClientInfo, 0, len(roster)+1)
	out = append(out, c)
	return append(out, roster...)
}

// UpdateInRoster applies updates to the client with the given id
func UpdateInRoster(roster []ClientInfo, id string, updates ...ClientUpdate) ([]ClientInfo, error) {
	idx := findClient(roster, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	out := make([]ClientInfo, len(roster))
	copy(out, roster)
	out[idx].Apply(updates...)
	return out, nil
}

// RemoveFromRoster drops the client with the given id
func RemoveFromRoster(roster []ClientInfo, id string) ([]ClientInfo, error) {
	idx := findClient(roster, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	out := make([]ClientInfo, 0, len(roster)-1)
	out = append(out, roster[:idx]...)
	return append(out, roster[idx+1:]...), nil
}

// FindClient returns a copy of the client with the given id
func FindClient(roster []ClientInfo, id string) (ClientInfo, bool) {
	idx := findClient(roster, id)
	if idx < 0 {
		return ClientInfo{}, false
	}
	return roster[idx], true
}

func findClient(roster []ClientInfo, id string) int {
	for i := range roster {
		if roster[i].ID == id {
			return i
		}
	}
	return -1
}
