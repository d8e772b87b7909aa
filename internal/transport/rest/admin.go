package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spaethfarms/storefront/internal/admin"
	"github.com/spaethfarms/storefront/internal/catalog"
	"github.com/spaethfarms/storefront/internal/content"
	"github.com/spaethfarms/storefront/pkg/web"
)

type adminLoginDto struct {
	Password string `json:"password" validate:"required"`
}

// AdminLogin checks the shared admin password and returns a session token.
// All failures get the same generic rejection.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto adminLoginDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	token, err := h.sessions.Login(r.Context(), dto.Password)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"token": token})
}

// AdminLogout revokes the presented session token.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	h.sessions.Logout(r.Context(), bearerToken(r))
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"status": "logged out"})
}

// requireSession guards the admin routes. Absent, unknown and expired
// sessions all get the same generic 401.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.sessions.Authenticate(r.Context(), bearerToken(r)); err != nil {
			web.RespondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// AdminProductCreate handles the creation of a new product.
func (h *Handler) AdminProductCreate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto catalog.ProductCreateDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	created, err := h.catalog.Create(r.Context(), dto)
	if err != nil {
		if errors.Is(err, catalog.ErrSlugTaken) {
			mLogger.WarnContext(r.Context(), "Slug already taken", "slug", dto.Slug)
			web.RespondError(w, mLogger, http.StatusConflict, "Product slug already taken")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created", "slug", created.Slug)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// AdminProductUpdate modifies an existing product's details.
func (h *Handler) AdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	slug, ok := web.ParseSlug(w, r, mLogger)
	if !ok {
		return
	}
	var dto catalog.ProductUpdateDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	updated, err := h.catalog.Update(r.Context(), slug, dto)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for update", "slug", slug)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product not found: %s", slug))
		case errors.Is(err, catalog.ErrSlugTaken):
			mLogger.WarnContext(r.Context(), "Slug already taken", "slug", dto.Slug)
			web.RespondError(w, mLogger, http.StatusConflict, "Product slug already taken")
		default:
			mLogger.ErrorContext(r.Context(), "Error updating product", "slug", slug, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product %s", slug))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated", "slug", updated.Slug)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// AdminProductDelete deletes a product by its slug.
func (h *Handler) AdminProductDelete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	slug, ok := web.ParseSlug(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), slug); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "slug", slug)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product not found: %s", slug))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "slug", slug, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product %s", slug))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted", "slug", slug)
	w.WriteHeader(http.StatusNoContent)
}

// AdminProductExport streams the catalog as an Excel workbook.
func (h *Handler) AdminProductExport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	products, err := h.catalog.FindAll(r.Context(), "", false, 0)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving products for export", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to export products")
		return
	}
	workbook, err := admin.BuildProductsWorkbook(products)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error building products workbook", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to export products")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	if err := workbook.Write(w); err != nil {
		mLogger.ErrorContext(r.Context(), "Error writing products workbook", "error", err)
	}
}

// AdminCategoriesReplace swaps in a new category list.
func (h *Handler) AdminCategoriesReplace(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var categories []catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&categories); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	for _, c := range categories {
		if c.ID == "" || c.Name == "" {
			web.RespondError(w, mLogger, http.StatusBadRequest, "Category id and name are required")
			return
		}
	}
	if err := h.catalog.ReplaceCategories(r.Context(), categories); err != nil {
		mLogger.ErrorContext(r.Context(), "Error replacing categories", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update categories")
		return
	}
	mLogger.InfoContext(r.Context(), "Categories updated", "count", len(categories))
	web.RespondJSON(w, mLogger, http.StatusOK, categories)
}

// AdminContentUpdate saves a full content document. Sections: site,
// settings.
func (h *Handler) AdminContentUpdate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	section := r.PathValue("section")
	switch section {
	case "site":
		var doc content.SiteContent
		if !h.decodeAndValidate(w, r, mLogger, &doc) {
			return
		}
		if err := h.content.UpdateSiteContent(r.Context(), doc); err != nil {
			mLogger.ErrorContext(r.Context(), "Error updating site content", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to save site content")
			return
		}
		web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"status": "saved"})
	case "settings":
		var doc content.Settings
		if !h.decodeAndValidate(w, r, mLogger, &doc) {
			return
		}
		if err := h.content.UpdateSettings(r.Context(), doc); err != nil {
			mLogger.ErrorContext(r.Context(), "Error updating settings", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to save settings")
			return
		}
		web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"status": "saved"})
	default:
		mLogger.WarnContext(r.Context(), "Unknown content section", "section", section)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Unknown content section: %s", section))
	}
}
