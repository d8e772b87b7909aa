// Package memory implements in-memory cart storage.
package memory

import (
	"context"
	"sync"

	"github.com/spaethfarms/storefront/internal/cart"
)

// Storage provides an in-memory implementation of cart.Storage. It is the
// default backend and the test double; carts survive for the life of the
// process only.
type Storage struct {
	mu    sync.RWMutex
	carts map[string][]cart.LineItem
}

var _ cart.Storage = (*Storage)(nil)

// New creates a new in-memory storage.
func New() *Storage {
	return &Storage{carts: make(map[string][]cart.LineItem)}
}

// Load returns the saved line items for a cart.
func (s *Storage) Load(_ context.Context, cartID string) ([]cart.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.carts[cartID]
	if !ok {
		return nil, cart.ErrNoSavedCart
	}
	out := make([]cart.LineItem, len(items))
	copy(out, items)
	return out, nil
}

// Save replaces the saved line items for a cart.
func (s *Storage) Save(_ context.Context, cartID string, items []cart.LineItem) error {
	saved := make([]cart.LineItem, len(items))
	copy(saved, items)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = saved
	return nil
}

// Delete removes the saved cart.
func (s *Storage) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}
