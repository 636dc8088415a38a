package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// Rule describes one discount eligibility rule. A rule matches either by
// exact product id/handle, or by a curated garment-type keyword combined
// with a brand-line marker in the title. Broad substring matching on
// arbitrary tags produced false-positive discounts in the past and is
// deliberately not supported.
type Rule struct {
	Handles     []string `json:"handles,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	BrandMarker string   `json:"brandMarker,omitempty"`
	Percentage  float64  `json:"percentage"`
	Description string   `json:"description,omitempty"`
}

// Discount is the result of a successful rule match.
type Discount struct {
	SalePrice   float64
	Percentage  float64
	Description string
}

// Resolver decides whether a discount applies to a line item. At most one
// rule applies per item; there is no stacking.
type Resolver struct {
	rules []Rule
}

// NewResolver creates a resolver over the given rules. Rule order matters:
// the first match wins.
func NewResolver(rules []Rule) *Resolver {
	return &Resolver{rules: rules}
}

// DefaultRules returns the built-in eligibility table for the brand line.
func DefaultRules() []Rule {
	return []Rule{
		{
			Handles: []string{
				"bungi-x-bobby-hoodie",
				"bungi-x-bobby-lightning-hoodie",
				"bungi-x-bobby-tee",
				"bungi-x-bobby-joggers",
			},
			Percentage:  12,
			Description: "12% off the BUNGI X BOBBY drop",
		},
		{
			Keywords:    []string{"hoodie", "tee", "t-shirt", "joggers", "sweatpants", "windbreaker", "beanie"},
			BrandMarker: "bungi x bobby",
			Percentage:  12,
			Description: "12% off the BUNGI X BOBBY drop",
		},
	}
}

// LoadRules reads a rule table from a JSON file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading discount rules: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing discount rules: %w", err)
	}
	return rules, nil
}

// Resolve returns the discount for an item, or nil if no rule matches.
// It never errors. Resolution is computed from the base price only, so
// calling it repeatedly on the same item yields the same result.
func (r *Resolver) Resolve(item LineItem) *Discount {
	if item.BasePrice <= 0 {
		return nil
	}
	for _, rule := range r.rules {
		if !rule.matches(item) {
			continue
		}
		if rule.Percentage <= 0 || rule.Percentage > 100 {
			continue
		}
		return &Discount{
			SalePrice:   round2(item.BasePrice * (1 - rule.Percentage/100)),
			Percentage:  rule.Percentage,
			Description: rule.Description,
		}
	}
	return nil
}

// Apply resets the item's sale price to the base price and re-runs
// resolution, so repeated applications never compound a discount.
func (r *Resolver) Apply(item LineItem) LineItem {
	item.SalePrice = 0
	if d := r.Resolve(item); d != nil && d.SalePrice < item.BasePrice {
		item.SalePrice = d.SalePrice
	}
	return item
}

func (rule *Rule) matches(item LineItem) bool {
	// Exact id/handle lookup is authoritative and checked first.
	for _, handle := range rule.Handles {
		if strings.EqualFold(handle, item.ProductID) || strings.EqualFold(handle, item.ID) {
			return true
		}
	}

	// Keyword match requires both a garment-type keyword and the brand-line
	// marker in the title.
	if len(rule.Keywords) == 0 || rule.BrandMarker == "" {
		return false
	}
	title := strings.ToLower(item.Title)
	if !strings.Contains(title, strings.ToLower(rule.BrandMarker)) {
		return false
	}
	for _, kw := range rule.Keywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// round2 rounds to two decimal places, the precision of the single display
// currency.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
