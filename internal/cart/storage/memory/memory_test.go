package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaethfarms/storefront/internal/cart"
)

func Test_Storage_LoadMissingCart(t *testing.T) {
	// given
	storage := New()
	// when
	_, err := storage.Load(context.Background(), "missing")
	// then
	assert.ErrorIs(t, err, cart.ErrNoSavedCart)
}

func Test_Storage_SaveAndLoad(t *testing.T) {
	// given
	ctx := context.Background()
	storage := New()
	items := []cart.LineItem{{Slug: "ribeye-steak", PriceCents: 3499, Quantity: 2}}
	// when
	require.NoError(t, storage.Save(ctx, "c1", items))
	loaded, err := storage.Load(ctx, "c1")
	// then
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func Test_Storage_LoadReturnsCopy(t *testing.T) {
	// given a saved cart
	ctx := context.Background()
	storage := New()
	require.NoError(t, storage.Save(ctx, "c1", []cart.LineItem{{Slug: "a", Quantity: 1}}))
	// when the caller mutates what Load returned
	loaded, err := storage.Load(ctx, "c1")
	require.NoError(t, err)
	loaded[0].Quantity = 99
	// then the stored state is unchanged
	again, err := storage.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Quantity)
}

func Test_Storage_Delete(t *testing.T) {
	// given
	ctx := context.Background()
	storage := New()
	require.NoError(t, storage.Save(ctx, "c1", []cart.LineItem{{Slug: "a", Quantity: 1}}))
	// when
	require.NoError(t, storage.Delete(ctx, "c1"))
	// then
	_, err := storage.Load(ctx, "c1")
	assert.ErrorIs(t, err, cart.ErrNoSavedCart)
	// deleting again is not an error
	assert.NoError(t, storage.Delete(ctx, "c1"))
}
