// Package store provides an interface for catalog storage operations.
package store

import (
	"context"

	"github.com/spaethfarms/storefront/internal/catalog"
)

// CatalogStore is an interface for catalog storage operations.
// It abstracts the underlying document store, allowing for different
// implementations (e.g., JSON file, in-memory).
type CatalogStore interface {
	// FindAll returns all products in catalog order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]catalog.Product, error)

	// FindBySlug retrieves a single product by its slug.
	// Returns ErrProductNotFound if no product exists with the given slug.
	FindBySlug(ctx context.Context, slug string) (*catalog.Product, error)

	// Create appends a new product to the catalog.
	// Returns ErrSlugTaken if the slug is already in use.
	Create(ctx context.Context, p catalog.Product) (*catalog.Product, error)

	// Update replaces the product with the given slug.
	// Returns ErrProductNotFound if no product exists with the given slug.
	Update(ctx context.Context, slug string, p catalog.Product) (*catalog.Product, error)

	// DeleteBySlug removes a product by its slug.
	// Returns ErrProductNotFound if no product exists with the given slug.
	DeleteBySlug(ctx context.Context, slug string) error

	// Categories returns the category list in display order.
	Categories(ctx context.Context) ([]catalog.Category, error)

	// ReplaceCategories swaps in a new category list.
	ReplaceCategories(ctx context.Context, categories []catalog.Category) error
}
