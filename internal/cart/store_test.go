package cart

import (
	"testing"
	"time"
)

func hoodie() LineItem {
	return LineItem{
		ProductID:  "bungi-x-bobby-hoodie",
		Title:      "BUNGI X BOBBY Hoodie",
		BasePrice:  60.0,
		Attributes: map[string]string{"size": "M", "color": "Black"},
	}
}

func TestAddOrIncrementMergesSameIdentity(t *testing.T) {
	s := NewStore()

	first, err := s.AddOrIncrement(hoodie(), 1)
	if err != nil {
		t.Fatalf("AddOrIncrement failed: %v", err)
	}

	// Same product and attributes in a different insertion order.
	same := hoodie()
	same.Attributes = map[string]string{"color": "Black", "size": "M"}
	second, err := s.AddOrIncrement(same, 2)
	if err != nil {
		t.Fatalf("AddOrIncrement failed: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("expected 1 item after merge, got %d", s.Len())
	}
	if second.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", second.Quantity)
	}
	if second.ID != first.ID {
		t.Errorf("expected merged item to keep id %q, got %q", first.ID, second.ID)
	}
}

func TestAddOrIncrementDifferentAttributesStaySeparate(t *testing.T) {
	s := NewStore()

	if _, err := s.AddOrIncrement(hoodie(), 1); err != nil {
		t.Fatalf("AddOrIncrement failed: %v", err)
	}

	other := hoodie()
	other.Attributes = map[string]string{"size": "L", "color": "Black"}
	if _, err := s.AddOrIncrement(other, 1); err != nil {
		t.Fatalf("AddOrIncrement failed: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", s.Len())
	}
}

func TestAddOrIncrementRejectsInvalidItem(t *testing.T) {
	s := NewStore()

	if _, err := s.AddOrIncrement(LineItem{Title: "No product id"}, 1); err != ErrInvalidItem {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if _, err := s.AddOrIncrement(LineItem{ProductID: "p1"}, 1); err != ErrInvalidItem {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}
}

func TestAddOrIncrementClampsQuantity(t *testing.T) {
	s := NewStore()

	item, err := s.AddOrIncrement(hoodie(), 0)
	if err != nil {
		t.Fatalf("AddOrIncrement failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("expected quantity clamped to 1, got %d", item.Quantity)
	}
}

func TestNewestItemsFirst(t *testing.T) {
	s := NewStore()

	s.AddOrIncrement(LineItem{ProductID: "p1", Title: "First", BasePrice: 10}, 1)
	s.AddOrIncrement(LineItem{ProductID: "p2", Title: "Second", BasePrice: 20}, 1)

	items := s.Items()
	if items[0].Title != "Second" {
		t.Errorf("expected newest item first, got %q", items[0].Title)
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	s := NewStore()
	item, _ := s.AddOrIncrement(hoodie(), 2)

	s.SetQuantity(item.ID, 0)
	if !s.IsEmpty() {
		t.Error("expected quantity 0 to remove the item")
	}
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	s := NewStore()
	item, _ := s.AddOrIncrement(hoodie(), 2)

	s.SetQuantity(item.ID, -3)
	if !s.IsEmpty() {
		t.Error("expected negative quantity to remove the item")
	}
}

func TestSetQuantityMissingIDIsNoop(t *testing.T) {
	s := NewStore()
	s.AddOrIncrement(hoodie(), 1)

	s.SetQuantity("nonexistent", 5)
	if s.Len() != 1 {
		t.Errorf("expected store untouched, got %d items", s.Len())
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	item, _ := s.AddOrIncrement(hoodie(), 1)

	if !s.Remove(item.ID) {
		t.Error("expected Remove to report true for existing item")
	}
	if s.Remove(item.ID) {
		t.Error("expected Remove to report false for missing item")
	}
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	s := NewStore()

	var seen [][]LineItem
	s.Subscribe(func(items []LineItem) {
		seen = append(seen, items)
	})

	item, _ := s.AddOrIncrement(hoodie(), 1)
	s.SetQuantity(item.ID, 4)
	s.Remove(item.ID)
	s.Clear() // empty store, no notification

	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	if seen[1][0].Quantity != 4 {
		t.Errorf("expected notification to carry quantity 4, got %d", seen[1][0].Quantity)
	}
	if len(seen[2]) != 0 {
		t.Errorf("expected final notification with empty list, got %d items", len(seen[2]))
	}
}

func TestHydrateDropsInvalidRows(t *testing.T) {
	s := NewStore()
	s.Hydrate([]LineItem{
		{ProductID: "p1", Title: "Keep", BasePrice: 10, Quantity: 2, AddedAt: time.Now()},
		{ProductID: "", Title: "No product", Quantity: 1},
		{ProductID: "p3", Title: "Zero qty", Quantity: 0},
	})

	if s.Len() != 1 {
		t.Fatalf("expected 1 surviving item, got %d", s.Len())
	}
	items := s.Items()
	if items[0].ID != items[0].Key() {
		t.Errorf("expected hydrated id to be recomputed identity key")
	}
}

func TestHydrateDoesNotNotify(t *testing.T) {
	s := NewStore()
	notified := false
	s.Subscribe(func([]LineItem) { notified = true })

	s.Hydrate([]LineItem{{ProductID: "p1", Title: "X", Quantity: 1}})
	if notified {
		t.Error("hydration must not notify subscribers")
	}
}
