// Package rest provides the HTTP API for the storefront: catalog browsing,
// cart operations, checkout, content documents and the admin panel.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/spaethfarms/storefront/internal/admin"
	"github.com/spaethfarms/storefront/internal/cart"
	"github.com/spaethfarms/storefront/internal/catalog"
	"github.com/spaethfarms/storefront/internal/checkout"
	"github.com/spaethfarms/storefront/internal/content"
	"github.com/spaethfarms/storefront/pkg/web"
)

type Handler struct {
	catalog  catalog.Service
	carts    *cart.Manager
	checkout checkout.Service
	content  content.Service
	sessions *admin.Service
	validate *validator.Validate
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates the API handler over the given services.
func NewHandler(
	catalogSvc catalog.Service,
	carts *cart.Manager,
	checkoutSvc checkout.Service,
	contentSvc content.Service,
	sessions *admin.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		carts:    carts,
		checkout: checkoutSvc,
		content:  contentSvc,
		sessions: sessions,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.ProductList)
		r.Get("/products/{slug}", h.ProductBySlug)
		r.Get("/categories", h.CategoryList)

		r.Get("/content/{section}", h.ContentSection)

		r.Post("/carts", h.CartCreate)
		r.Route("/carts/{id}", func(r chi.Router) {
			r.Get("/", h.CartGet)
			r.Delete("/", h.CartClear)
			r.Get("/events", h.CartEvents)
			r.Put("/open", h.CartSetOpen)
			r.Post("/items", h.CartAddItem)
			r.Put("/items/{slug}", h.CartUpdateItem)
			r.Delete("/items/{slug}", h.CartRemoveItem)
		})

		r.Get("/shipping/progress", h.ShippingProgress)
		r.Post("/checkout", h.CheckoutSubmit)

		r.Post("/admin/login", h.AdminLogin)
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireSession)
			r.Post("/logout", h.AdminLogout)
			r.Post("/products", h.AdminProductCreate)
			r.Get("/products/export", h.AdminProductExport)
			r.Put("/products/{slug}", h.AdminProductUpdate)
			r.Delete("/products/{slug}", h.AdminProductDelete)
			r.Put("/categories", h.AdminCategoriesReplace)
			r.Put("/content/{section}", h.AdminContentUpdate)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeAndValidate decodes the request body into dto and runs struct
// validation, writing the error response itself. Returns false when the
// request was rejected; no state may change after that.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
