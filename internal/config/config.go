package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spaethfarms/storefront/pkg/config"
	"github.com/spaethfarms/storefront/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Log        config.LogConfig      `koanf:"log"`
	PProf      config.PProfConfig    `koanf:"pprof"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
	Nats       config.NATSConfig     `koanf:"nats"`
	Redis      config.RedisConfig    `koanf:"redis"`
	Catalog    CatalogConfig         `koanf:"catalog"`
	Cart       CartConfig            `koanf:"cart"`
	Checkout   CheckoutConfig        `koanf:"checkout"`
	Content    ContentConfig         `koanf:"content"`
	Admin      AdminConfig           `koanf:"admin"`
}

// CatalogConfig configures the product catalog store.
type CatalogConfig struct {
	File string `koanf:"file"`
}

// CartConfig selects and configures the cart persistence backend.
type CartConfig struct {
	Storage   string        `koanf:"storage"`
	KeyPrefix string        `koanf:"keyPrefix"`
	TTL       time.Duration `koanf:"ttl"`
}

// CheckoutConfig configures the order submission flow.
type CheckoutConfig struct {
	ProcessingDelay time.Duration `koanf:"processingDelay"`
}

// ContentConfig configures the editable content repository. When Persist
// is false, saves are simulated with SaveDelay and nothing is written.
type ContentConfig struct {
	Dir       string        `koanf:"dir"`
	Persist   bool          `koanf:"persist"`
	SaveDelay time.Duration `koanf:"saveDelay"`
}

// AdminConfig configures the admin panel gate.
type AdminConfig struct {
	Password     string        `koanf:"password"`
	SessionTTL   time.Duration `koanf:"sessionTtl"`
	SessionStore string        `koanf:"sessionStore"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- Storefront Configuration ---\n")
	b.WriteString(fmt.Sprintf("  catalog.file: %s\n", c.Catalog.File))
	b.WriteString(fmt.Sprintf("  cart.storage: %s\n", c.Cart.Storage))
	b.WriteString(fmt.Sprintf("  cart.keyPrefix: %s\n", c.Cart.KeyPrefix))
	b.WriteString(fmt.Sprintf("  cart.ttl: %s\n", c.Cart.TTL))
	b.WriteString(fmt.Sprintf("  checkout.processingDelay: %s\n", c.Checkout.ProcessingDelay))
	b.WriteString(fmt.Sprintf("  content.dir: %s\n", c.Content.Dir))
	b.WriteString(fmt.Sprintf("  content.persist: %t\n", c.Content.Persist))
	b.WriteString(fmt.Sprintf("  content.saveDelay: %s\n", c.Content.SaveDelay))
	b.WriteString(fmt.Sprintf("  admin.password: %s\n", maskSecret(c.Admin.Password)))
	b.WriteString(fmt.Sprintf("  admin.sessionTtl: %s\n", c.Admin.SessionTTL))
	b.WriteString(fmt.Sprintf("  admin.sessionStore: %s\n", c.Admin.SessionStore))

	b.WriteString("\n--- Infrastructure ---\n")
	b.WriteString(fmt.Sprintf("  nats.enabled: %t\n", c.Nats.Enabled))
	b.WriteString(fmt.Sprintf("  nats.url: %s\n", c.Nats.Url))
	b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

func maskSecret(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}

// UsesRedis reports whether any backend is configured to use redis.
func (c *Config) UsesRedis() bool {
	return c.Cart.Storage == StorageRedis || c.Admin.SessionStore == StorageRedis
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Nats.Validate(); err != nil {
		return err
	}
	if c.Catalog.File == "" {
		return fmt.Errorf("catalog file is not configured")
	}
	switch c.Cart.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown cart storage backend: %q", c.Cart.Storage)
	}
	switch c.Admin.SessionStore {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown admin session store: %q", c.Admin.SessionStore)
	}
	if c.UsesRedis() {
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	}
	if c.Checkout.ProcessingDelay < 0 {
		return fmt.Errorf("checkout processing delay must not be negative")
	}
	if c.Content.Dir == "" {
		return fmt.Errorf("content directory is not configured")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("admin password is not configured")
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("admin session ttl is not configured")
	}
	return nil
}
