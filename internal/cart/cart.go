// Package cart implements the shopping cart: per-session stores with
// durable persistence and change notification.
package cart

import (
	"context"
	"errors"
)

// LineItem is one (product, quantity) pair in the cart. Product fields are
// a snapshot taken at add time; Weight is display-only. This is also the
// persisted shape.
type LineItem struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	Weight     string `json:"weight"`
	Quantity   int    `json:"qty"`
}

// Event is delivered to subscribers after every cart mutation.
type Event struct {
	CartID        string     `json:"cart_id"`
	Items         []LineItem `json:"items"`
	Count         int        `json:"count"`
	SubtotalCents int64      `json:"subtotal_cents"`
}

// Subscriber receives cart events. Callbacks run synchronously on the
// mutating goroutine, before the mutation returns.
type Subscriber func(Event)

// Storage is the durable backend a Store persists to after every mutation.
// Implementations live in the storage subpackages.
type Storage interface {
	// Load returns the saved line items for a cart.
	// Returns ErrNoSavedCart when nothing has been saved under the ID.
	Load(ctx context.Context, cartID string) ([]LineItem, error)

	// Save replaces the saved line items for a cart.
	Save(ctx context.Context, cartID string, items []LineItem) error

	// Delete removes the saved cart entirely. Deleting an absent cart is
	// not an error.
	Delete(ctx context.Context, cartID string) error
}

var (
	// ErrNoSavedCart indicates storage holds nothing under the cart ID.
	ErrNoSavedCart = errors.New("no saved cart")
	// ErrInvalidQuantity indicates a quantity below 1 was passed to AddItem.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
