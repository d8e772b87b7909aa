package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaethfarms/storefront/internal/cart"
	cartmemory "github.com/spaethfarms/storefront/internal/cart/storage/memory"
	"github.com/spaethfarms/storefront/pkg/messaging"
)

// mockSubmitter is a mock implementation of the OrderSubmitter interface
type mockSubmitter struct {
	submissions []Submission
	err         error
}

func (m *mockSubmitter) Submit(_ context.Context, submission Submission) error {
	if m.err != nil {
		return m.err
	}
	m.submissions = append(m.submissions, submission)
	return nil
}

// mockPublisher records published events
type mockPublisher struct {
	events []messaging.Event
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestCart(t *testing.T, items ...cart.LineItem) *cart.Store {
	t.Helper()
	store := cart.NewStore("c1", nil, cartmemory.New(), testLogger())
	for _, item := range items {
		require.NoError(t, store.AddItem(context.Background(), item))
	}
	return store
}

func validCustomer() CustomerDto {
	return CustomerDto{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "123 Farm Rd",
		City:      "Madison",
		State:     "WI",
		ZipCode:   "53703",
	}
}

func staticRates() Rates { return standardRates }

func Test_Submit_Success(t *testing.T) {
	// given a cart with one ribeye
	ctx := context.Background()
	submitter := &mockSubmitter{}
	publisher := &mockPublisher{}
	service := NewService(submitter, publisher, staticRates, testLogger())
	cartStore := newTestCart(t, cart.LineItem{Slug: "ribeye-steak", PriceCents: 3499, Quantity: 2})
	// when
	confirmation, err := service.Submit(ctx, cartStore, validCustomer())
	// then
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(confirmation.OrderNumber, "SF-"))
	assert.Len(t, confirmation.OrderNumber, 13)
	assert.Equal(t, int64(6998), confirmation.Totals.SubtotalCents)
	// the submitter saw the items with server-side prices
	require.Len(t, submitter.submissions, 1)
	assert.Equal(t, confirmation.OrderNumber, submitter.submissions[0].OrderNumber)
	assert.Len(t, submitter.submissions[0].Items, 1)
	// a confirmation event went out
	require.Len(t, publisher.events, 1)
	assert.Equal(t, messaging.OrdersConfirmedSubject, publisher.events[0].Subject())
	// and the cart was cleared
	assert.Empty(t, cartStore.Items())
}

func Test_Submit_EmptyCart(t *testing.T) {
	// given
	service := NewService(&mockSubmitter{}, &mockPublisher{}, staticRates, testLogger())
	cartStore := newTestCart(t)
	// when
	confirmation, err := service.Submit(context.Background(), cartStore, validCustomer())
	// then
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, confirmation)
}

func Test_Submit_SubmitterFailureKeepsCart(t *testing.T) {
	// given a submitter that rejects the order
	ctx := context.Background()
	submitter := &mockSubmitter{err: errors.New("payment declined")}
	service := NewService(submitter, &mockPublisher{}, staticRates, testLogger())
	cartStore := newTestCart(t, cart.LineItem{Slug: "ribeye-steak", PriceCents: 3499, Quantity: 1})
	// when
	confirmation, err := service.Submit(ctx, cartStore, validCustomer())
	// then the cart survives untouched
	require.Error(t, err)
	assert.Nil(t, confirmation)
	assert.Len(t, cartStore.Items(), 1)
}

func Test_Submit_PublisherFailureDoesNotUndoOrder(t *testing.T) {
	// given a broker that is down
	ctx := context.Background()
	publisher := &mockPublisher{err: errors.New("nats unreachable")}
	service := NewService(&mockSubmitter{}, publisher, staticRates, testLogger())
	cartStore := newTestCart(t, cart.LineItem{Slug: "ribeye-steak", PriceCents: 3499, Quantity: 1})
	// when
	confirmation, err := service.Submit(ctx, cartStore, validCustomer())
	// then the order still confirms and the cart clears
	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Empty(t, cartStore.Items())
}

func Test_Submit_CancelledContext(t *testing.T) {
	// given a slow submitter and an abandoned request
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service := NewService(&SimulatedSubmitter{Delay: time.Minute}, &mockPublisher{}, staticRates, testLogger())
	cartStore := newTestCart(t, cart.LineItem{Slug: "ribeye-steak", PriceCents: 3499, Quantity: 1})
	// when
	_, err := service.Submit(ctx, cartStore, validCustomer())
	// then the submission aborts and nothing was cleared
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, cartStore.Items(), 1)
}

func Test_Quote_UsesLiveRates(t *testing.T) {
	// given rates that change between calls
	current := standardRates
	service := NewService(&mockSubmitter{}, &mockPublisher{}, func() Rates { return current }, testLogger())
	// when / then
	assert.Equal(t, int64(2999), service.Quote(10000).ShippingCents)
	current.FlatRateCents = 999
	assert.Equal(t, int64(999), service.Quote(10000).ShippingCents)
}
