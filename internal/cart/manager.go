package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Manager hands out the Store for each cart ID, rehydrating saved carts
// from storage. Unknown or unreadable saved state yields an empty cart,
// never an error, so the storefront stays browsable whatever storage does.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	storage Storage
	logger  *slog.Logger
}

// NewManager creates a Manager backed by the given storage.
func NewManager(storage Storage, logger *slog.Logger) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		storage: storage,
		logger:  logger.With("component", "cart_manager"),
	}
}

// Create mints a new empty cart with a generated ID.
func (m *Manager) Create(_ context.Context) *Store {
	id := uuid.NewString()
	store := NewStore(id, nil, m.storage, m.logger)
	m.mu.Lock()
	m.stores[id] = store
	m.mu.Unlock()
	return store
}

// Get returns the Store for id, rehydrating it from storage on first use.
// A cart that was never saved, or whose saved state cannot be read, starts
// empty.
func (m *Manager) Get(ctx context.Context, id string) *Store {
	m.mu.Lock()
	if store, ok := m.stores[id]; ok {
		m.mu.Unlock()
		return store
	}
	m.mu.Unlock()

	items, err := m.storage.Load(ctx, id)
	if err != nil && !errors.Is(err, ErrNoSavedCart) {
		m.logger.Warn("failed to load saved cart, starting empty", "cart_id", id, "error", err)
		items = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have rehydrated the same cart in the meantime.
	if store, ok := m.stores[id]; ok {
		return store
	}
	store := NewStore(id, items, m.storage, m.logger)
	m.stores[id] = store
	return store
}

// Forget drops the in-memory Store and the saved state for id. Used once a
// checkout completes and the cart is gone for good.
func (m *Manager) Forget(ctx context.Context, id string) {
	m.mu.Lock()
	delete(m.stores, id)
	m.mu.Unlock()
	if err := m.storage.Delete(ctx, id); err != nil {
		m.logger.Error("failed to delete saved cart", "cart_id", id, "error", err)
	}
}
