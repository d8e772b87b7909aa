package rest

import (
	"net/http"

	"github.com/spaethfarms/storefront/internal/cart"
	"github.com/spaethfarms/storefront/pkg/web"
)

// CartEvents upgrades to a websocket and streams cart change events so the
// header badge and sidebar can re-render without polling. The current
// snapshot is sent immediately on connect, then one event per mutation.
// The subscription is dropped as soon as the peer goes away.
func (h *Handler) CartEvents(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	store := h.carts.Get(r.Context(), id.String())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Mutations must never block on a slow peer; a buffered channel plus
	// drop-oldest keeps the subscriber callback non-blocking while the
	// connection always converges on the latest state.
	events := make(chan cart.Event, 8)
	unsubscribe := store.Subscribe(func(event cart.Event) {
		for {
			select {
			case events <- event:
				return
			default:
				select {
				case <-events:
				default:
				}
			}
		}
	})
	defer unsubscribe()

	events <- cart.Event{
		CartID:        store.ID(),
		Items:         store.Items(),
		Count:         store.Count(),
		SubtotalCents: store.SubtotalCents(),
	}

	// Reader goroutine: its only job is noticing the peer closed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case event := <-events:
			if err := conn.WriteJSON(event); err != nil {
				mLogger.DebugContext(r.Context(), "Websocket write failed, dropping subscriber", "cart_id", store.ID(), "error", err)
				return
			}
		}
	}
}
