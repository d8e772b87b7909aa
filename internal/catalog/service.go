package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Service defines the methods for browsing and managing the catalog.
// It abstracts the underlying business logic and document access.
type Service interface {
	// FindAll returns products in catalog order. A category narrows the
	// result, featuredOnly keeps only featured products, and limit > 0 caps
	// the result size.
	FindAll(ctx context.Context, category string, featuredOnly bool, limit int32) ([]ProductDto, error)

	// FindBySlug retrieves a single product by its slug.
	// Returns ErrProductNotFound if no product exists with the given slug.
	FindBySlug(ctx context.Context, slug string) (*ProductDto, error)

	// Create adds a new product, generating its ID and, when absent, its slug.
	// Returns ErrSlugTaken if the slug is already in use.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given slug.
	Update(ctx context.Context, slug string, product ProductUpdateDto) (*ProductDto, error)

	// Delete removes a product by its slug.
	// Returns ErrProductNotFound if no product exists with the given slug.
	Delete(ctx context.Context, slug string) error

	// FindCategories returns the category list in display order.
	FindCategories(ctx context.Context) ([]Category, error)

	// ReplaceCategories swaps in a new category list.
	ReplaceCategories(ctx context.Context, categories []Category) error
}

// Store is the persistence boundary the service talks to. It is satisfied
// by store.CatalogStore.
type Store interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, slug string, p Product) (*Product, error)
	DeleteBySlug(ctx context.Context, slug string) error
	Categories(ctx context.Context) ([]Category, error)
	ReplaceCategories(ctx context.Context, categories []Category) error
}

// catalogService implements Service on top of a Store.
type catalogService struct {
	store Store
}

// NewService creates a new catalog Service with the provided store.
func NewService(store Store) Service {
	return &catalogService{store: store}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	PriceCents      int64    `json:"price_cents"`
	Weight          string   `json:"weight"`
	Category        string   `json:"category"`
	Image           string   `json:"image"`
	InStock         bool     `json:"in_stock"`
	Featured        bool     `json:"featured"`
	Details         []string `json:"details"`
}

// ProductCreateDto represents the data transfer object for creating a new
// product. Slug is optional; it is derived from Name when empty.
type ProductCreateDto struct {
	Slug            string   `json:"slug"             validate:"omitempty,max=100"`
	Name            string   `json:"name"             validate:"required,max=100"`
	Description     string   `json:"description"      validate:"max=500"`
	LongDescription string   `json:"long_description" validate:"max=5000"`
	PriceCents      int64    `json:"price_cents"      validate:"gte=0"`
	Weight          string   `json:"weight"           validate:"max=50"`
	Category        string   `json:"category"         validate:"required,oneof=steaks roasts ground bundles specialty"`
	Image           string   `json:"image"            validate:"max=500"`
	InStock         bool     `json:"in_stock"`
	Featured        bool     `json:"featured"`
	Details         []string `json:"details"          validate:"dive,max=200"`
}

// ProductUpdateDto represents the data transfer object for updating a product.
type ProductUpdateDto struct {
	Slug            string   `json:"slug"             validate:"omitempty,max=100"`
	Name            string   `json:"name"             validate:"required,max=100"`
	Description     string   `json:"description"      validate:"max=500"`
	LongDescription string   `json:"long_description" validate:"max=5000"`
	PriceCents      int64    `json:"price_cents"      validate:"gte=0"`
	Weight          string   `json:"weight"           validate:"max=50"`
	Category        string   `json:"category"         validate:"required,oneof=steaks roasts ground bundles specialty"`
	Image           string   `json:"image"            validate:"max=500"`
	InStock         bool     `json:"in_stock"`
	Featured        bool     `json:"featured"`
	Details         []string `json:"details"          validate:"dive,max=200"`
}

// FindAll retrieves products, applying the category, featured and limit
// filters in that order.
func (s *catalogService) FindAll(ctx context.Context, category string, featuredOnly bool, limit int32) ([]ProductDto, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	dtos := make([]ProductDto, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if featuredOnly && !p.Featured {
			continue
		}
		dtos = append(dtos, *toDto(&p))
		if limit > 0 && int32(len(dtos)) == limit {
			break
		}
	}
	return dtos, nil
}

// FindBySlug retrieves a product by its slug and returns it as a ProductDto.
func (s *catalogService) FindBySlug(ctx context.Context, slug string) (*ProductDto, error) {
	product, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by slug %s: %w", slug, err)
	}
	return toDto(product), nil
}

// Create adds a new product with a generated ID. The slug is taken from the
// DTO when present, otherwise derived from the name.
func (s *catalogService) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	slug := product.Slug
	if slug == "" {
		slug = GenerateSlug(product.Name)
	}
	created, err := s.store.Create(ctx, Product{
		ID:              uuid.NewString(),
		Slug:            slug,
		Name:            product.Name,
		Description:     product.Description,
		LongDescription: product.LongDescription,
		PriceCents:      product.PriceCents,
		Weight:          product.Weight,
		Category:        product.Category,
		Image:           product.Image,
		InStock:         product.InStock,
		Featured:        product.Featured,
		Details:         product.Details,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update modifies an existing product's details, keeping its ID.
func (s *catalogService) Update(ctx context.Context, slug string, product ProductUpdateDto) (*ProductDto, error) {
	existing, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by slug %s: %w", slug, err)
	}
	newSlug := product.Slug
	if newSlug == "" {
		newSlug = slug
	}
	updated, err := s.store.Update(ctx, slug, Product{
		ID:              existing.ID,
		Slug:            newSlug,
		Name:            product.Name,
		Description:     product.Description,
		LongDescription: product.LongDescription,
		PriceCents:      product.PriceCents,
		Weight:          product.Weight,
		Category:        product.Category,
		Image:           product.Image,
		InStock:         product.InStock,
		Featured:        product.Featured,
		Details:         product.Details,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with slug %s: %w", slug, err)
	}
	return toDto(updated), nil
}

// Delete removes a product by its slug.
func (s *catalogService) Delete(ctx context.Context, slug string) error {
	return s.store.DeleteBySlug(ctx, slug)
}

// FindCategories returns the category list.
func (s *catalogService) FindCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// ReplaceCategories swaps in a new category list.
func (s *catalogService) ReplaceCategories(ctx context.Context, categories []Category) error {
	if err := s.store.ReplaceCategories(ctx, categories); err != nil {
		return fmt.Errorf("failed to replace categories: %w", err)
	}
	return nil
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL-safe slug from a product name.
func GenerateSlug(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// toDto converts a Product to a ProductDto.
func toDto(product *Product) *ProductDto {
	return &ProductDto{
		ID:              product.ID,
		Slug:            product.Slug,
		Name:            product.Name,
		Description:     product.Description,
		LongDescription: product.LongDescription,
		PriceCents:      product.PriceCents,
		Weight:          product.Weight,
		Category:        product.Category,
		Image:           product.Image,
		InStock:         product.InStock,
		Featured:        product.Featured,
		Details:         product.Details,
	}
}
