package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spaethfarms/storefront/internal/catalog"
	"github.com/spaethfarms/storefront/pkg/web"
)

// ProductList retrieves products, optionally filtered by ?category= and
// ?featured=true and capped by ?limit=.
func (h *Handler) ProductList(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := r.URL.Query().Get("category")
	if category != "" && !catalog.ValidCategory(category) {
		mLogger.WarnContext(r.Context(), "Unknown category requested", "category", category)
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Unknown category: %s", category))
		return
	}
	featuredOnly := r.URL.Query().Get("featured") == "true"
	limit, ok := web.ParseOptionalGt(r, w, mLogger, "limit", 0, 0)
	if !ok {
		return
	}

	list, err := h.catalog.FindAll(r.Context(), category, featuredOnly, limit)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// ProductBySlug retrieves a product by its slug.
func (h *Handler) ProductBySlug(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	slug, ok := web.ParseSlug(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.catalog.FindBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "slug", slug)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product not found: %s", slug))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "slug", slug, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product %s", slug))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CategoryList retrieves the category list in display order.
func (h *Handler) CategoryList(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.catalog.FindCategories(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving categories", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}
