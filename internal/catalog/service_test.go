package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogStore is a mock implementation of the Store interface
type mockCatalogStore struct {
	products   []Product
	product    *Product
	categories []Category
	err        error
	created    *Product
	updated    *Product
}

func (m *mockCatalogStore) FindAll(_ context.Context) ([]Product, error) {
	return m.products, m.err
}

func (m *mockCatalogStore) FindBySlug(_ context.Context, _ string) (*Product, error) {
	return m.product, m.err
}

func (m *mockCatalogStore) Create(_ context.Context, p Product) (*Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &p
	return &p, nil
}

func (m *mockCatalogStore) Update(_ context.Context, _ string, p Product) (*Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updated = &p
	return &p, nil
}

func (m *mockCatalogStore) DeleteBySlug(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCatalogStore) Categories(_ context.Context) ([]Category, error) {
	return m.categories, m.err
}

func (m *mockCatalogStore) ReplaceCategories(_ context.Context, categories []Category) error {
	if m.err != nil {
		return m.err
	}
	m.categories = categories
	return nil
}

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Slug: "ribeye-steak", Name: "Ribeye Steak", Category: CategorySteaks, PriceCents: 3499, Featured: true},
		{ID: "2", Slug: "chuck-roast", Name: "Chuck Roast", Category: CategoryRoasts, PriceCents: 1299},
		{ID: "3", Slug: "filet-mignon", Name: "Filet Mignon", Category: CategorySteaks, PriceCents: 3999, Featured: true},
		{ID: "4", Slug: "ground-beef-80-20", Name: "Ground Beef 80/20", Category: CategoryGround, PriceCents: 899},
	}
}

func Test_FindAll_Filters(t *testing.T) {
	testCases := []struct {
		name          string
		category      string
		featuredOnly  bool
		limit         int32
		expectedSlugs []string
	}{
		{
			name:          "no filters returns catalog order",
			expectedSlugs: []string{"ribeye-steak", "chuck-roast", "filet-mignon", "ground-beef-80-20"},
		},
		{
			name:          "category filter",
			category:      CategorySteaks,
			expectedSlugs: []string{"ribeye-steak", "filet-mignon"},
		},
		{
			name:          "featured filter",
			featuredOnly:  true,
			expectedSlugs: []string{"ribeye-steak", "filet-mignon"},
		},
		{
			name:          "limit caps results",
			limit:         2,
			expectedSlugs: []string{"ribeye-steak", "chuck-roast"},
		},
		{
			name:          "category and featured combined",
			category:      CategoryRoasts,
			featuredOnly:  true,
			expectedSlugs: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(&mockCatalogStore{products: sampleProducts()})
			// when
			found, err := service.FindAll(context.Background(), tc.category, tc.featuredOnly, tc.limit)
			// then
			require.NoError(t, err)
			slugs := make([]string, 0, len(found))
			for _, p := range found {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tc.expectedSlugs, slugs)
		})
	}
}

func Test_FindBySlug(t *testing.T) {
	// given
	service := NewService(&mockCatalogStore{product: &Product{Slug: "ribeye-steak", Name: "Ribeye Steak"}})
	// when
	found, err := service.FindBySlug(context.Background(), "ribeye-steak")
	// then
	require.NoError(t, err)
	assert.Equal(t, "Ribeye Steak", found.Name)
}

func Test_FindBySlug_NotFound(t *testing.T) {
	// given
	service := NewService(&mockCatalogStore{err: ErrProductNotFound})
	// when
	_, err := service.FindBySlug(context.Background(), "no-such-product")
	// then
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func Test_Create_GeneratesIDAndSlug(t *testing.T) {
	// given
	store := &mockCatalogStore{}
	service := NewService(store)
	// when the DTO carries no slug
	created, err := service.Create(context.Background(), ProductCreateDto{
		Name:       "Denver Steak (8 oz)",
		PriceCents: 1599,
		Category:   CategorySteaks,
	})
	// then the slug is derived from the name and the ID is generated
	require.NoError(t, err)
	assert.Equal(t, "denver-steak-8-oz", created.Slug)
	_, parseErr := uuid.Parse(created.ID)
	assert.NoError(t, parseErr)
}

func Test_Create_KeepsExplicitSlug(t *testing.T) {
	// given
	service := NewService(&mockCatalogStore{})
	// when
	created, err := service.Create(context.Background(), ProductCreateDto{
		Slug:       "denver",
		Name:       "Denver Steak",
		PriceCents: 1599,
		Category:   CategorySteaks,
	})
	// then
	require.NoError(t, err)
	assert.Equal(t, "denver", created.Slug)
}

func Test_Create_SlugTaken(t *testing.T) {
	// given
	service := NewService(&mockCatalogStore{err: ErrSlugTaken})
	// when
	_, err := service.Create(context.Background(), ProductCreateDto{
		Name:       "Ribeye Steak",
		PriceCents: 3499,
		Category:   CategorySteaks,
	})
	// then
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func Test_Update_KeepsIDAndSlug(t *testing.T) {
	// given an existing product
	store := &mockCatalogStore{product: &Product{ID: "id-1", Slug: "ribeye-steak"}}
	service := NewService(store)
	// when the update carries no slug
	updated, err := service.Update(context.Background(), "ribeye-steak", ProductUpdateDto{
		Name:       "Ribeye Steak",
		PriceCents: 3799,
		Category:   CategorySteaks,
	})
	// then the identity is preserved
	require.NoError(t, err)
	assert.Equal(t, "id-1", updated.ID)
	assert.Equal(t, "ribeye-steak", updated.Slug)
	assert.Equal(t, int64(3799), updated.PriceCents)
}

func Test_GenerateSlug(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases and hyphenates", input: "Ribeye Steak", expected: "ribeye-steak"},
		{name: "collapses punctuation runs", input: "Grill Master's Bundle", expected: "grill-master-s-bundle"},
		{name: "trims edge hyphens", input: "  Flank Steak!  ", expected: "flank-steak"},
		{name: "keeps digits", input: "Ground Beef 80/20", expected: "ground-beef-80-20"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GenerateSlug(tc.input))
		})
	}
}
