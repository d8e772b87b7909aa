package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spaethfarms/storefront/internal/catalog"
)

// document is the on-disk shape of the catalog file.
type document struct {
	Products   []catalog.Product  `json:"products"`
	Categories []catalog.Category `json:"categories"`
}

// JSONFileStore keeps the whole catalog in memory and writes the backing
// JSON document atomically after every mutation. Reads never touch disk.
type JSONFileStore struct {
	mu     sync.RWMutex
	path   string
	doc    document
	logger *slog.Logger
}

var _ CatalogStore = (*JSONFileStore)(nil)

// NewJSONFileStore loads the catalog document from path. A missing or
// corrupt file is logged and treated as an empty catalog, never as a fatal
// error.
func NewJSONFileStore(path string, logger *slog.Logger) *JSONFileStore {
	s := &JSONFileStore{
		path:   path,
		logger: logger.With("component", "catalog_store"),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("catalog file unreadable, starting with an empty catalog", "path", path, "error", err)
		return s
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		s.logger.Warn("catalog file corrupt, starting with an empty catalog", "path", path, "error", err)
		s.doc = document{}
	}
	return s
}

// FindAll returns a copy of the product list in catalog order.
func (s *JSONFileStore) FindAll(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, len(s.doc.Products))
	copy(out, s.doc.Products)
	return out, nil
}

// FindBySlug retrieves a product by slug.
func (s *JSONFileStore) FindBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.doc.Products {
		if p.Slug == slug {
			found := p
			return &found, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

// Create appends a new product and persists the document.
func (s *JSONFileStore) Create(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.doc.Products {
		if existing.Slug == p.Slug {
			return nil, catalog.ErrSlugTaken
		}
	}
	s.doc.Products = append(s.doc.Products, p)
	if err := s.persistLocked(); err != nil {
		s.doc.Products = s.doc.Products[:len(s.doc.Products)-1]
		return nil, err
	}
	created := p
	return &created, nil
}

// Update replaces the product stored under slug and persists the document.
func (s *JSONFileStore) Update(_ context.Context, slug string, p catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.doc.Products {
		if existing.Slug != slug {
			continue
		}
		if p.Slug != slug {
			for _, other := range s.doc.Products {
				if other.Slug == p.Slug {
					return nil, catalog.ErrSlugTaken
				}
			}
		}
		s.doc.Products[i] = p
		if err := s.persistLocked(); err != nil {
			s.doc.Products[i] = existing
			return nil, err
		}
		updated := p
		return &updated, nil
	}
	return nil, catalog.ErrProductNotFound
}

// DeleteBySlug removes a product and persists the document.
func (s *JSONFileStore) DeleteBySlug(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.doc.Products {
		if existing.Slug != slug {
			continue
		}
		s.doc.Products = append(s.doc.Products[:i], s.doc.Products[i+1:]...)
		if err := s.persistLocked(); err != nil {
			s.doc.Products = slices.Insert(s.doc.Products, i, existing)
			return err
		}
		return nil
	}
	return catalog.ErrProductNotFound
}

// Categories returns a copy of the category list.
func (s *JSONFileStore) Categories(_ context.Context) ([]catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Category, len(s.doc.Categories))
	copy(out, s.doc.Categories)
	return out, nil
}

// ReplaceCategories swaps in a new category list and persists the document.
func (s *JSONFileStore) ReplaceCategories(_ context.Context, categories []catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.doc.Categories
	s.doc.Categories = categories
	if err := s.persistLocked(); err != nil {
		s.doc.Categories = previous
		return err
	}
	return nil
}

// persistLocked writes the document to a temp file and renames it over the
// target so readers never observe a partial write. Callers hold s.mu.
func (s *JSONFileStore) persistLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write catalog document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp catalog file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}
