// Package app contains the application setup for the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spaethfarms/storefront/internal/admin"
	"github.com/spaethfarms/storefront/internal/cart"
	cartmemory "github.com/spaethfarms/storefront/internal/cart/storage/memory"
	cartredis "github.com/spaethfarms/storefront/internal/cart/storage/redis"
	"github.com/spaethfarms/storefront/internal/catalog"
	catalogstore "github.com/spaethfarms/storefront/internal/catalog/store"
	"github.com/spaethfarms/storefront/internal/checkout"
	"github.com/spaethfarms/storefront/internal/config"
	"github.com/spaethfarms/storefront/internal/content"
	"github.com/spaethfarms/storefront/internal/transport/rest"
	"github.com/spaethfarms/storefront/pkg/messaging"
	"github.com/spaethfarms/storefront/pkg/server"
)

type Dependencies struct {
	CatalogService  catalog.Service
	Carts           *cart.Manager
	CheckoutService checkout.Service
	ContentService  content.Service
	Sessions        *admin.Service
	Logger          *slog.Logger
}

// SetupDependencies wires the services per configuration. The redis client
// may be nil when no backend is configured to use it.
func SetupDependencies(ctx context.Context, cfg *config.Config, redisClient *redis.Client, publisher messaging.Publisher, logger *slog.Logger) (*Dependencies, error) {
	catalogService := catalog.NewService(catalogstore.NewJSONFileStore(cfg.Catalog.File, logger))

	cartStorage, err := newCartStorage(cfg, redisClient)
	if err != nil {
		return nil, err
	}
	carts := cart.NewManager(cartStorage, logger)

	contentService, err := content.NewService(ctx, newContentRepository(cfg, logger), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up content service: %w", err)
	}

	rates := func() checkout.Rates {
		shipping := contentService.Settings().Shipping
		return checkout.Rates{
			FreeShippingThresholdCents: shipping.FreeShippingThresholdCents,
			FlatRateCents:              shipping.FlatRateCents,
			TaxRate:                    shipping.TaxRate,
		}
	}
	submitter := &checkout.SimulatedSubmitter{Delay: cfg.Checkout.ProcessingDelay}
	checkoutService := checkout.NewService(submitter, publisher, rates, logger)

	sessionStore, err := newSessionStore(cfg, redisClient)
	if err != nil {
		return nil, err
	}
	sessions := admin.NewService(cfg.Admin.Password, cfg.Admin.SessionTTL, sessionStore, logger)

	return &Dependencies{
		CatalogService:  catalogService,
		Carts:           carts,
		CheckoutService: checkoutService,
		ContentService:  contentService,
		Sessions:        sessions,
		Logger:          logger,
	}, nil
}

func newCartStorage(cfg *config.Config, redisClient *redis.Client) (cart.Storage, error) {
	switch cfg.Cart.Storage {
	case config.StorageRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("cart storage is %q but no redis client is available", cfg.Cart.Storage)
		}
		return cartredis.New(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.TTL), nil
	case config.StorageMemory:
		return cartmemory.New(), nil
	default:
		return nil, fmt.Errorf("unknown cart storage backend: %q", cfg.Cart.Storage)
	}
}

func newSessionStore(cfg *config.Config, redisClient *redis.Client) (admin.SessionStore, error) {
	switch cfg.Admin.SessionStore {
	case config.StorageRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("admin session store is %q but no redis client is available", cfg.Admin.SessionStore)
		}
		return admin.NewRedisSessionStore(redisClient, "admin:session:", cfg.Admin.SessionTTL), nil
	case config.StorageMemory:
		return admin.NewMemorySessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown admin session store: %q", cfg.Admin.SessionStore)
	}
}

func newContentRepository(cfg *config.Config, logger *slog.Logger) content.Repository {
	fileRepo := content.NewFileRepository(cfg.Content.Dir, logger)
	if cfg.Content.Persist {
		return fileRepo
	}
	return &content.SimulatedRepository{Wrapped: fileRepo, Delay: cfg.Content.SaveDelay}
}

// SetupHttpHandler initializes the HTTP router and routes for the storefront.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(
		deps.CatalogService,
		deps.Carts,
		deps.CheckoutService,
		deps.ContentService,
		deps.Sessions,
		deps.Logger,
	)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the storefront application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
