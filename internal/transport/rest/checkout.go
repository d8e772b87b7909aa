package rest

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/spaethfarms/storefront/internal/checkout"
	"github.com/spaethfarms/storefront/pkg/web"
)

// checkoutDto is the body for submitting an order.
type checkoutDto struct {
	CartID   string               `json:"cart_id"  validate:"required,uuid4"`
	Customer checkout.CustomerDto `json:"customer" validate:"required"`
}

// CheckoutSubmit places an order for the cart's current lines. Totals are
// recomputed server-side from catalog prices; client-supplied amounts are
// never trusted. The cart survives any failure and is cleared only on
// success.
func (h *Handler) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto checkoutDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	cartID, err := uuid.Parse(dto.CartID)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid cart ID")
		return
	}

	store := h.carts.Get(r.Context(), cartID.String())
	confirmation, err := h.checkout.Submit(r.Context(), store, dto.Customer)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			mLogger.WarnContext(r.Context(), "Checkout rejected, cart is empty", "cart_id", cartID)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Cart is empty")
			return
		}
		mLogger.ErrorContext(r.Context(), "Checkout failed", "cart_id", cartID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to submit order")
		return
	}
	h.carts.Forget(r.Context(), cartID.String())
	mLogger.InfoContext(r.Context(), "Order submitted", "cart_id", cartID, "order_number", confirmation.OrderNumber)
	web.RespondJSON(w, mLogger, http.StatusOK, confirmation)
}
