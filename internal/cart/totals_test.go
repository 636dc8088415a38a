package cart

import "testing"

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", Title: "A", BasePrice: 20, Quantity: 2},
		{ProductID: "p2", Title: "B", BasePrice: 15, SalePrice: 12, Quantity: 1},
	}

	totals := ComputeTotals(items)
	if totals.Subtotal != 52 {
		t.Errorf("expected subtotal 52, got %v", totals.Subtotal)
	}
	if totals.ItemCount != 3 {
		t.Errorf("expected item count 3, got %d", totals.ItemCount)
	}
	if totals.TotalSavings != 3 {
		t.Errorf("expected savings 3, got %v", totals.TotalSavings)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals.Subtotal != 0 || totals.ItemCount != 0 || totals.TotalSavings != 0 {
		t.Errorf("expected exact zeros, got %+v", totals)
	}
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", Title: "A", BasePrice: 19.99, SalePrice: 17.59, Quantity: 3},
	}

	totals := ComputeTotals(items)
	if totals.Subtotal != 52.77 {
		t.Errorf("expected subtotal 52.77, got %v", totals.Subtotal)
	}
	if totals.TotalSavings != 7.20 {
		t.Errorf("expected savings 7.20, got %v", totals.TotalSavings)
	}
}

func TestLineItemDerivedValues(t *testing.T) {
	item := LineItem{
		ProductID: "bungi-x-bobby-hoodie",
		Title:     "BUNGI X BOBBY Hoodie",
		BasePrice: 60,
		SalePrice: 52.80,
		Quantity:  2,
	}

	if !item.HasDiscount() {
		t.Error("expected HasDiscount true")
	}
	if item.EffectivePrice() != 52.80 {
		t.Errorf("expected effective price 52.80, got %v", item.EffectivePrice())
	}
	if item.LineTotal() != 105.60 {
		t.Errorf("expected line total 105.60, got %v", item.LineTotal())
	}

	// Sale price at or above base is not a discount.
	item.SalePrice = 60
	if item.HasDiscount() {
		t.Error("expected HasDiscount false when sale price equals base")
	}
	if item.EffectivePrice() != 60 {
		t.Errorf("expected effective price 60, got %v", item.EffectivePrice())
	}
}

func TestDisplayName(t *testing.T) {
	item := LineItem{
		Title:      "BUNGI X BOBBY Hoodie",
		Attributes: map[string]string{"size": "M", "color": "Black"},
	}

	want := "BUNGI X BOBBY Hoodie (color: Black, size: M)"
	if got := item.DisplayName(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	plain := LineItem{Title: "Sticker Pack"}
	if got := plain.DisplayName(); got != "Sticker Pack" {
		t.Errorf("expected bare title, got %q", got)
	}
}
