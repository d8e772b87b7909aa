package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spaethfarms/storefront/internal/cart"
	"github.com/spaethfarms/storefront/internal/catalog"
	"github.com/spaethfarms/storefront/pkg/web"
)

// cartDto is the API shape of a cart snapshot.
type cartDto struct {
	ID                        string          `json:"id"`
	Items                     []cart.LineItem `json:"items"`
	Count                     int             `json:"count"`
	SubtotalCents             int64           `json:"subtotal_cents"`
	AmountToFreeShippingCents int64           `json:"amount_to_free_shipping_cents"`
	Open                      bool            `json:"open"`
}

// cartAddItemDto is the body for adding a product to a cart. Quantity must
// already be a positive integer; anything else is rejected before any
// state changes.
type cartAddItemDto struct {
	Slug     string `json:"slug" validate:"required,max=100"`
	Quantity int    `json:"qty"  validate:"required,min=1"`
}

// cartUpdateItemDto is the body for setting a line's quantity. Zero and
// negative quantities remove the line.
type cartUpdateItemDto struct {
	Quantity *int `json:"qty" validate:"required"`
}

func (h *Handler) toCartDto(store *cart.Store) cartDto {
	threshold := h.checkout.Rates().FreeShippingThresholdCents
	return cartDto{
		ID:                        store.ID(),
		Items:                     store.Items(),
		Count:                     store.Count(),
		SubtotalCents:             store.SubtotalCents(),
		AmountToFreeShippingCents: store.AmountToFreeShippingCents(threshold),
		Open:                      store.IsOpen(),
	}
}

// cartOpenDto is the body for setting the drawer flag. Omitting "open"
// toggles instead.
type cartOpenDto struct {
	Open *bool `json:"open"`
}

// CartSetOpen sets or toggles the sidebar drawer flag. The flag is UI
// state only and is never persisted.
func (h *Handler) CartSetOpen(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto cartOpenDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	store := h.carts.Get(r.Context(), id.String())
	if dto.Open != nil {
		store.SetOpen(*dto.Open)
	} else {
		store.ToggleOpen()
	}
	web.RespondJSON(w, mLogger, http.StatusOK, h.toCartDto(store))
}

// CartCreate mints a new empty cart.
func (h *Handler) CartCreate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	store := h.carts.Create(r.Context())
	mLogger.InfoContext(r.Context(), "Cart created", "cart_id", store.ID())
	web.RespondJSON(w, mLogger, http.StatusCreated, h.toCartDto(store))
}

// CartGet returns the cart snapshot, rehydrating saved carts on first use.
func (h *Handler) CartGet(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	store := h.carts.Get(r.Context(), id.String())
	web.RespondJSON(w, mLogger, http.StatusOK, h.toCartDto(store))
}

// CartAddItem adds a product to the cart. The product is looked up
// server-side so the stored line always carries the catalog price, and an
// out-of-stock product is rejected here, at the calling boundary — the
// cart store itself has no stock awareness.
func (h *Handler) CartAddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto cartAddItemDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	product, err := h.catalog.FindBySlug(r.Context(), dto.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for cart add", "slug", dto.Slug)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product not found: %s", dto.Slug))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product for cart add", "slug", dto.Slug, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	if !product.InStock {
		mLogger.WarnContext(r.Context(), "Out of stock product rejected", "slug", dto.Slug)
		web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product is out of stock: %s", dto.Slug))
		return
	}

	store := h.carts.Get(r.Context(), id.String())
	if err := store.AddItem(r.Context(), cart.LineItem{
		Slug:       product.Slug,
		Name:       product.Name,
		PriceCents: product.PriceCents,
		Image:      product.Image,
		Weight:     product.Weight,
		Quantity:   dto.Quantity,
	}); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		return
	}
	mLogger.InfoContext(r.Context(), "Item added to cart", "cart_id", store.ID(), "slug", dto.Slug, "qty", dto.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, h.toCartDto(store))
}

// CartUpdateItem sets a line's quantity; zero or below removes the line,
// exactly like CartRemoveItem. Unknown slugs are a no-op.
func (h *Handler) CartUpdateItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	slug, ok := web.ParseSlug(w, r, mLogger)
	if !ok {
		return
	}
	var dto cartUpdateItemDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	store := h.carts.Get(r.Context(), id.String())
	store.UpdateQuantity(r.Context(), slug, *dto.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, h.toCartDto(store))
}

// CartRemoveItem deletes a line entirely, regardless of quantity.
func (h *Handler) CartRemoveItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	slug, ok := web.ParseSlug(w, r, mLogger)
	if !ok {
		return
	}
	store := h.carts.Get(r.Context(), id.String())
	store.RemoveItem(r.Context(), slug)
	web.RespondJSON(w, mLogger, http.StatusOK, h.toCartDto(store))
}

// CartClear empties the cart.
func (h *Handler) CartClear(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	store := h.carts.Get(r.Context(), id.String())
	store.Clear(r.Context())
	web.RespondJSON(w, mLogger, http.StatusOK, h.toCartDto(store))
}

// ShippingProgress reports how far a cart is from free shipping, for the
// sidebar progress bar.
func (h *Handler) ShippingProgress(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	cartID := r.URL.Query().Get("cart")
	if cartID == "" {
		web.RespondError(w, mLogger, http.StatusBadRequest, "cart url parameter is required")
		return
	}
	store := h.carts.Get(r.Context(), cartID)
	rates := h.checkout.Rates()
	subtotal := store.SubtotalCents()
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"subtotal_cents":                subtotal,
		"threshold_cents":               rates.FreeShippingThresholdCents,
		"amount_to_free_shipping_cents": store.AmountToFreeShippingCents(rates.FreeShippingThresholdCents),
		"free_shipping":                 subtotal >= rates.FreeShippingThresholdCents,
	})
}
