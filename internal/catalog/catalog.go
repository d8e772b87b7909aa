// Package catalog defines the product catalog domain: products, categories
// and the errors shared by its store and service layers.
package catalog

import "errors"

// Product categories recognized by the storefront.
const (
	CategorySteaks    = "steaks"
	CategoryRoasts    = "roasts"
	CategoryGround    = "ground"
	CategoryBundles   = "bundles"
	CategorySpecialty = "specialty"
)

// Categories lists every valid product category, in display order.
var Categories = []string{
	CategorySteaks,
	CategoryRoasts,
	CategoryGround,
	CategoryBundles,
	CategorySpecialty,
}

// Product is a single item offered for sale. Prices are integer cents;
// Weight is a display-only label and never enters quantity math.
type Product struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	PriceCents      int64    `json:"price_cents"`
	Weight          string   `json:"weight"`
	Category        string   `json:"category"`
	Image           string   `json:"image"`
	InStock         bool     `json:"in_stock"`
	Featured        bool     `json:"featured"`
	Details         []string `json:"details"`
}

// Category is a browsable product grouping shown on the storefront.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// ValidCategory reports whether name is one of the recognized categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrSlugTaken indicates a product with the same slug already exists.
	ErrSlugTaken = errors.New("product slug already taken")
)
