package cart

import "time"

// Store is the canonical, ordered collection of line items for one session.
// All mutations run on the session's event loop, so no locking is needed;
// every mutation notifies subscribers synchronously before returning, so
// totals and storage are never observably stale relative to the list.
type Store struct {
	items []LineItem
	subs  []func(items []LineItem)
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Subscribe registers a callback invoked synchronously after every mutation
// with the current item list.
func (s *Store) Subscribe(fn func(items []LineItem)) {
	s.subs = append(s.subs, fn)
}

// AddOrIncrement merges the candidate into the store. If an item with the
// same (productId, attributes) identity exists, its quantity is incremented
// by qty; otherwise the candidate is inserted at the front with quantity qty.
// qty values below 1 are treated as 1.
func (s *Store) AddOrIncrement(candidate LineItem, qty int) (LineItem, error) {
	if candidate.ProductID == "" || candidate.Title == "" {
		return LineItem{}, ErrInvalidItem
	}
	if qty < 1 {
		qty = 1
	}

	key := candidate.Key()
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity += qty
			item := s.items[i]
			s.notify()
			return item, nil
		}
	}

	candidate.ID = key
	candidate.Quantity = qty
	if candidate.AddedAt.IsZero() {
		candidate.AddedAt = s.now()
	}
	// Newest items first.
	s.items = append([]LineItem{candidate}, s.items...)
	s.notify()
	return candidate, nil
}

// SetQuantity sets the quantity for an item. A quantity of zero or below
// removes the item; setting quantity on a missing id is a no-op, not an
// error.
func (s *Store) SetQuantity(id string, qty int) {
	if qty <= 0 {
		s.Remove(id)
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = qty
			s.notify()
			return
		}
	}
}

// Remove deletes an item by id and reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.notify()
			return true
		}
	}
	return false
}

// SetVariantID records a resolved variant id on an item, e.g. after a
// catalog lookup at checkout time.
func (s *Store) SetVariantID(id, variantID string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].VariantID = variantID
			s.notify()
			return true
		}
	}
	return false
}

// Clear empties the store. Used after a successful checkout.
func (s *Store) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.notify()
}

// Hydrate replaces the store's contents from a loaded snapshot, dropping
// rows that would violate store invariants. Subscribers are not notified:
// hydration happens once at session start, before anything observes the
// store.
func (s *Store) Hydrate(items []LineItem) {
	s.items = nil
	for _, item := range items {
		if item.ProductID == "" || item.Title == "" || item.Quantity <= 0 {
			continue
		}
		item.ID = item.Key()
		s.items = append(s.items, item)
	}
}

// Items returns a copy of the item list, most-recently-added first.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (LineItem, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return LineItem{}, false
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	return len(s.items)
}

// IsEmpty returns true if the store has no items.
func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn(s.Items())
	}
}
