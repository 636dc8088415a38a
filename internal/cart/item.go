// Package cart implements the cart aggregation and pricing engine: the line
// item store, discount resolution, totals, snapshot persistence, and the
// checkout handoff. It holds no rendering or transport code of its own.
package cart

import (
	"sort"
	"strings"
	"time"
)

// LineItem is one cart row: a product plus the variant-defining attributes
// chosen for it, and its quantity.
type LineItem struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"productId"`
	VariantID  string            `json:"variantId,omitempty"`
	Title      string            `json:"title"`
	BasePrice  float64           `json:"basePrice"`
	SalePrice  float64           `json:"salePrice,omitempty"`
	Quantity   int               `json:"quantity"`
	Image      string            `json:"image,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	AddedAt    time.Time         `json:"addedAt"`
}

// IdentityKey derives the stable identity of a line item from its product id
// and attribute set. Attribute insertion order is irrelevant: keys are sorted
// before joining. Two adds with the same identity merge into one row.
func IdentityKey(productID string, attrs map[string]string) string {
	if len(attrs) == 0 {
		return productID
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(productID)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(attrs[k])
	}
	return b.String()
}

// Key returns the item's identity key.
func (li *LineItem) Key() string {
	return IdentityKey(li.ProductID, li.Attributes)
}

// HasDiscount returns true if a discount rule matched this item.
func (li *LineItem) HasDiscount() bool {
	return li.SalePrice > 0 && li.SalePrice < li.BasePrice
}

// EffectivePrice returns the unit price actually charged: the sale price
// when a discount matched, the base price otherwise.
func (li *LineItem) EffectivePrice() float64 {
	if li.HasDiscount() {
		return li.SalePrice
	}
	return li.BasePrice
}

// LineTotal returns the effective price times quantity.
func (li *LineItem) LineTotal() float64 {
	return round2(li.EffectivePrice() * float64(li.Quantity))
}

// DisplayName returns the title with the variant attributes appended, e.g.
// "BUNGI X BOBBY Hoodie (color: Black, size: M)".
func (li *LineItem) DisplayName() string {
	if len(li.Attributes) == 0 {
		return li.Title
	}
	keys := make([]string, 0, len(li.Attributes))
	for k := range li.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+li.Attributes[k])
	}
	return li.Title + " (" + strings.Join(parts, ", ") + ")"
}
