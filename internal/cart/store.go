package cart

import (
	"context"
	"log/slog"
	"sync"
)

// Store is the single source of truth for one cart. Every mutation
// persists the resulting line list to storage and notifies subscribers
// before returning. Storage failures are logged and swallowed so the cart
// stays usable; validation failures reject the mutation with no state
// change.
//
// A cart has one writer at a time per session. Concurrent use from
// multiple sessions resolves as last-write-wins in storage, which is a
// documented limitation, not a bug to fix here.
type Store struct {
	mu      sync.Mutex
	id      string
	items   []LineItem
	open    bool
	storage Storage
	logger  *slog.Logger
	subs    map[int]Subscriber
	nextSub int
}

// NewStore creates a Store for the given cart ID seeded with items.
func NewStore(id string, items []LineItem, storage Storage, logger *slog.Logger) *Store {
	return &Store{
		id:      id,
		items:   items,
		storage: storage,
		logger:  logger.With("component", "cart", "cart_id", id),
		subs:    make(map[int]Subscriber),
	}
}

// ID returns the cart's identifier.
func (s *Store) ID() string { return s.id }

// AddItem merges item into the cart: an existing line for the same slug has
// its quantity incremented, otherwise the line is appended, preserving
// insertion order. A quantity below 1 is rejected with no state change.
// The store has no stock awareness; callers are the authority on whether a
// product may be added.
func (s *Store) AddItem(ctx context.Context, item LineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Slug == item.Slug {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	s.afterMutationLocked(ctx)
	return nil
}

// RemoveItem deletes the line for slug entirely, regardless of quantity.
// A slug not in the cart is a true no-op: nothing is persisted and no
// event fires.
func (s *Store) RemoveItem(ctx context.Context, slug string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Slug == slug {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.afterMutationLocked(ctx)
			return
		}
	}
	s.mu.Unlock()
}

// UpdateQuantity sets the line's quantity. A quantity of zero or below
// behaves exactly like RemoveItem. A slug not in the cart is a true no-op;
// lines are never created here, nothing is persisted and no event fires.
func (s *Store) UpdateQuantity(ctx context.Context, slug string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, slug)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Slug == slug {
			s.items[i].Quantity = quantity
			s.afterMutationLocked(ctx)
			return
		}
	}
	s.mu.Unlock()
}

// Clear empties all lines. Used after checkout completion.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.afterMutationLocked(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the total quantity across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.items)
}

// SubtotalCents returns the sum of price times quantity across all lines.
// It is recomputed on every call, never cached.
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotalOf(s.items)
}

// AmountToFreeShippingCents returns how far the subtotal is from the free
// shipping threshold, floored at zero.
func (s *Store) AmountToFreeShippingCents(thresholdCents int64) int64 {
	remaining := thresholdCents - s.SubtotalCents()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetOpen sets the drawer visibility flag. It is independent of item
// mutations and never persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// ToggleOpen flips the drawer visibility flag and returns the new value.
func (s *Store) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// IsOpen reports the drawer visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Subscribe registers fn for cart events and returns an unsubscribe func.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// afterMutationLocked persists the line list and notifies subscribers.
// It takes ownership of the held lock and releases it before invoking
// callbacks, so a subscriber may read the store without deadlocking.
func (s *Store) afterMutationLocked(ctx context.Context) {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	event := Event{
		CartID:        s.id,
		Items:         items,
		Count:         countOf(items),
		SubtotalCents: subtotalOf(items),
	}
	s.mu.Unlock()

	if err := s.storage.Save(ctx, s.id, items); err != nil {
		s.logger.Error("failed to persist cart", "error", err)
	}
	for _, fn := range subs {
		fn(event)
	}
}

func countOf(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func subtotalOf(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}
