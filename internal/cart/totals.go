package cart

// Totals is the read-only summary derived from the line item list.
type Totals struct {
	Subtotal     float64
	ItemCount    int
	TotalSavings float64
}

// ComputeTotals recomputes the summary from scratch on every call. Carts
// hold tens of items at most, so there is no incremental cache to get stale.
// Zero items yields exact zeros.
func ComputeTotals(items []LineItem) Totals {
	var t Totals
	for _, item := range items {
		qty := float64(item.Quantity)
		t.Subtotal += item.EffectivePrice() * qty
		t.TotalSavings += (item.BasePrice - item.EffectivePrice()) * qty
		t.ItemCount += item.Quantity
	}
	t.Subtotal = round2(t.Subtotal)
	t.TotalSavings = round2(t.TotalSavings)
	return t
}
