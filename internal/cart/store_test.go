package cart

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorage is a mock implementation of the Storage interface
type mockStorage struct {
	saved     map[string][]LineItem
	saveErr   error
	loadErr   error
	deleteErr error
	saveCalls int
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: make(map[string][]LineItem)}
}

func (m *mockStorage) Load(_ context.Context, cartID string) ([]LineItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	items, ok := m.saved[cartID]
	if !ok {
		return nil, ErrNoSavedCart
	}
	return items, nil
}

func (m *mockStorage) Save(_ context.Context, cartID string, items []LineItem) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[cartID] = items
	return nil
}

func (m *mockStorage) Delete(_ context.Context, cartID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.saved, cartID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func ribeye(qty int) LineItem {
	return LineItem{Slug: "ribeye-steak", Name: "Ribeye Steak", PriceCents: 3499, Quantity: qty}
}

func groundBeef(qty int) LineItem {
	return LineItem{Slug: "ground-beef-80-20", Name: "Ground Beef 80/20", PriceCents: 899, Quantity: qty}
}

func Test_Store_AddItem(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name          string
		initial       []LineItem
		add           LineItem
		expectError   error
		expectedItems []LineItem
	}{
		{
			name:          "Success - new line appended",
			initial:       nil,
			add:           ribeye(1),
			expectedItems: []LineItem{ribeye(1)},
		},
		{
			name:          "Success - same slug merges quantities",
			initial:       []LineItem{ribeye(1)},
			add:           ribeye(2),
			expectedItems: []LineItem{ribeye(3)},
		},
		{
			name:          "Success - different slug keeps insertion order",
			initial:       []LineItem{ribeye(1)},
			add:           groundBeef(4),
			expectedItems: []LineItem{ribeye(1), groundBeef(4)},
		},
		{
			name:          "Error - zero quantity rejected",
			initial:       []LineItem{ribeye(1)},
			add:           groundBeef(0),
			expectError:   ErrInvalidQuantity,
			expectedItems: []LineItem{ribeye(1)},
		},
		{
			name:          "Error - negative quantity rejected",
			initial:       nil,
			add:           ribeye(-5),
			expectError:   ErrInvalidQuantity,
			expectedItems: []LineItem{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			store := NewStore("c1", tc.initial, newMockStorage(), testLogger())
			// when
			err := store.AddItem(ctx, tc.add)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				require.NoError(t, err)
			}
			assert.ElementsMatch(t, tc.expectedItems, store.Items())
		})
	}
}

func Test_Store_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name          string
		initial       []LineItem
		slug          string
		quantity      int
		expectedItems []LineItem
	}{
		{
			name:          "Success - quantity replaced, not added",
			initial:       []LineItem{ribeye(2)},
			slug:          "ribeye-steak",
			quantity:      5,
			expectedItems: []LineItem{ribeye(5)},
		},
		{
			name:          "Success - zero removes the line",
			initial:       []LineItem{ribeye(2), groundBeef(1)},
			slug:          "ribeye-steak",
			quantity:      0,
			expectedItems: []LineItem{groundBeef(1)},
		},
		{
			name:          "Success - negative removes the line",
			initial:       []LineItem{ribeye(2)},
			slug:          "ribeye-steak",
			quantity:      -1,
			expectedItems: []LineItem{},
		},
		{
			name:          "Success - unknown slug is a no-op",
			initial:       []LineItem{ribeye(2)},
			slug:          "filet-mignon",
			quantity:      3,
			expectedItems: []LineItem{ribeye(2)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			store := NewStore("c1", tc.initial, newMockStorage(), testLogger())
			// when
			store.UpdateQuantity(ctx, tc.slug, tc.quantity)
			// then
			assert.ElementsMatch(t, tc.expectedItems, store.Items())
		})
	}
}

func Test_Store_RemoveItem(t *testing.T) {
	// given
	ctx := context.Background()
	store := NewStore("c1", []LineItem{ribeye(3), groundBeef(1)}, newMockStorage(), testLogger())
	// when
	store.RemoveItem(ctx, "ribeye-steak")
	// then the whole line goes, regardless of quantity
	assert.Equal(t, []LineItem{groundBeef(1)}, store.Items())

	// removing an absent slug changes nothing
	store.RemoveItem(ctx, "no-such-product")
	assert.Equal(t, []LineItem{groundBeef(1)}, store.Items())
}

func Test_Store_AbsentSlugMutationsDoNotPersistOrNotify(t *testing.T) {
	// given
	ctx := context.Background()
	storage := newMockStorage()
	store := NewStore("c1", []LineItem{ribeye(2)}, storage, testLogger())
	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })
	// when lines that are not in the cart are touched
	store.RemoveItem(ctx, "no-such-product")
	store.UpdateQuantity(ctx, "no-such-product", 3)
	store.UpdateQuantity(ctx, "no-such-product", 0)
	// then nothing was saved and no event fired
	assert.Equal(t, 0, storage.saveCalls)
	assert.Empty(t, events)
	assert.Equal(t, []LineItem{ribeye(2)}, store.Items())
}

func Test_Store_Totals(t *testing.T) {
	testCases := []struct {
		name             string
		items            []LineItem
		expectedCount    int
		expectedSubtotal int64
	}{
		{
			name:             "empty cart",
			items:            nil,
			expectedCount:    0,
			expectedSubtotal: 0,
		},
		{
			name:             "single line",
			items:            []LineItem{ribeye(2)},
			expectedCount:    2,
			expectedSubtotal: 6998,
		},
		{
			name:             "multiple lines",
			items:            []LineItem{ribeye(3), groundBeef(2)},
			expectedCount:    5,
			expectedSubtotal: 3*3499 + 2*899,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			store := NewStore("c1", tc.items, newMockStorage(), testLogger())
			// then
			assert.Equal(t, tc.expectedCount, store.Count())
			assert.Equal(t, tc.expectedSubtotal, store.SubtotalCents())
		})
	}
}

func Test_Store_AmountToFreeShipping(t *testing.T) {
	const threshold = int64(19900)
	// given a cart below the threshold
	store := NewStore("c1", []LineItem{{Slug: "a", PriceCents: 15000, Quantity: 1}}, newMockStorage(), testLogger())
	// then the remaining amount is reported
	assert.Equal(t, int64(4900), store.AmountToFreeShippingCents(threshold))

	// given a cart at the threshold
	store = NewStore("c2", []LineItem{{Slug: "a", PriceCents: 19900, Quantity: 1}}, newMockStorage(), testLogger())
	assert.Equal(t, int64(0), store.AmountToFreeShippingCents(threshold))

	// given a cart above the threshold, the amount never goes negative
	store = NewStore("c3", []LineItem{{Slug: "a", PriceCents: 25000, Quantity: 1}}, newMockStorage(), testLogger())
	assert.Equal(t, int64(0), store.AmountToFreeShippingCents(threshold))
}

func Test_Store_PersistsAfterMutation(t *testing.T) {
	// given
	ctx := context.Background()
	storage := newMockStorage()
	store := NewStore("c1", nil, storage, testLogger())
	// when
	require.NoError(t, store.AddItem(ctx, ribeye(2)))
	store.UpdateQuantity(ctx, "ribeye-steak", 1)
	store.Clear(ctx)
	// then each mutation wrote the full line list
	assert.Equal(t, 3, storage.saveCalls)
	assert.Empty(t, storage.saved["c1"])
}

func Test_Store_StorageErrorDoesNotRejectMutation(t *testing.T) {
	// given a storage that always fails
	ctx := context.Background()
	storage := newMockStorage()
	storage.saveErr = errors.New("redis down")
	store := NewStore("c1", nil, storage, testLogger())
	// when
	err := store.AddItem(ctx, ribeye(1))
	// then the mutation still succeeds in memory
	require.NoError(t, err)
	assert.Equal(t, []LineItem{ribeye(1)}, store.Items())
}

func Test_Store_SubscriberNotifiedOnMutation(t *testing.T) {
	// given
	ctx := context.Background()
	store := NewStore("c1", nil, newMockStorage(), testLogger())
	var events []Event
	unsubscribe := store.Subscribe(func(e Event) { events = append(events, e) })
	// when
	require.NoError(t, store.AddItem(ctx, ribeye(2)))
	// then the event carries the full state
	require.Len(t, events, 1)
	assert.Equal(t, "c1", events[0].CartID)
	assert.Equal(t, 2, events[0].Count)
	assert.Equal(t, int64(6998), events[0].SubtotalCents)

	// and after unsubscribe no further events arrive
	unsubscribe()
	store.Clear(ctx)
	assert.Len(t, events, 1)
}

func Test_Store_SubscriberMayReadStore(t *testing.T) {
	// given a subscriber that reads back from the store, which must not deadlock
	ctx := context.Background()
	store := NewStore("c1", nil, newMockStorage(), testLogger())
	var observed int64
	store.Subscribe(func(Event) { observed = store.SubtotalCents() })
	// when
	require.NoError(t, store.AddItem(ctx, ribeye(1)))
	// then
	assert.Equal(t, int64(3499), observed)
}

func Test_Store_OpenFlag(t *testing.T) {
	// given
	store := NewStore("c1", nil, newMockStorage(), testLogger())
	assert.False(t, store.IsOpen())
	// when / then
	store.SetOpen(true)
	assert.True(t, store.IsOpen())
	assert.False(t, store.ToggleOpen())
	assert.True(t, store.ToggleOpen())
}
