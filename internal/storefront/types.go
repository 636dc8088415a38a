// Package storefront provides a client for the shop's storefront API.
package storefront

import (
	"fmt"
	"sort"
)

// Product represents a storefront product (e.g. a hoodie or tee).
type Product struct {
	ID              string    `json:"id"`
	Handle          string    `json:"handle"`
	Title           string    `json:"title"`
	DescriptionHTML string    `json:"descriptionHtml"`
	Price           float64   `json:"price"`
	CompareAtPrice  float64   `json:"compareAtPrice,omitempty"`
	Image           string    `json:"image,omitempty"`
	Available       bool      `json:"available"`
	Tags            []string  `json:"tags,omitempty"`
	Variants        []Variant `json:"variants"`
}

// Variant represents a purchasable SKU of a product, identified by an
// opaque external id used at checkout time.
type Variant struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Price     float64           `json:"price"`
	Available bool              `json:"available"`
	Options   map[string]string `json:"options,omitempty"`
}

// HasVariants returns true if the product has more than one variant.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 1
}

// DefaultVariant returns the first available variant, falling back to the
// first variant of any availability. Returns nil for products with no variants.
func (p *Product) DefaultVariant() *Variant {
	for i := range p.Variants {
		if p.Variants[i].Available {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}

// FindVariant returns the variant whose option values match all the given
// attributes, or nil if none matches.
func (p *Product) FindVariant(attrs map[string]string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].MatchesOptions(attrs) {
			return &p.Variants[i]
		}
	}
	return nil
}

// MatchesOptions returns true if every given attribute matches the
// variant's option of the same name.
func (v *Variant) MatchesOptions(attrs map[string]string) bool {
	for name, want := range attrs {
		if v.Options[name] != want {
			return false
		}
	}
	return true
}

// OptionNames returns the distinct option names across all variants,
// in first-seen order (e.g. ["size", "color"]).
func (p *Product) OptionNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, v := range p.Variants {
		for _, name := range sortedKeys(v.Options) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// OptionValues returns the distinct values for an option name across all
// variants, in first-seen order.
func (p *Product) OptionValues(name string) []string {
	var values []string
	seen := make(map[string]bool)
	for _, v := range p.Variants {
		val, ok := v.Options[name]
		if !ok || seen[val] {
			continue
		}
		seen[val] = true
		values = append(values, val)
	}
	return values
}

// DisplayPrice returns the product price formatted for display.
func (p *Product) DisplayPrice() string {
	return FormatPrice(p.Price)
}

// OnSale returns true if the product has a compare-at price above the
// current price.
func (p *Product) OnSale() bool {
	return p.CompareAtPrice > p.Price && p.Price > 0
}

// FormatPrice renders a decimal price for display, single currency.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// sortedKeys returns map keys in sorted order so option iteration is stable.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
