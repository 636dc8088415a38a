// Package wishlist implements the saved-products list, persisted alongside
// the cart snapshot.
package wishlist

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bungibobby/shop-terminal-go/internal/storage"
)

// Entry is one saved product. Wishlists carry no quantities; moving an
// entry to the cart is the cart's job.
type Entry struct {
	ProductID string    `json:"productId"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// List is an ordered set of saved products, newest first. Duplicate adds
// are no-ops. Like the cart, saves are best-effort and failures are logged.
type List struct {
	entries []Entry
	store   storage.Store
	key     string
	logger  *log.Logger
	now     func() time.Time
}

// New creates a wishlist bound to a storage slot and hydrates it from any
// previous snapshot. store may be nil for an in-memory-only list.
func New(store storage.Store, key string, logger *log.Logger) *List {
	if logger == nil {
		logger = log.Default()
	}
	l := &List{store: store, key: key, logger: logger, now: time.Now}
	l.load()
	return l
}

// Add saves a product. Returns false if it was already saved.
func (l *List) Add(e Entry) bool {
	if l.Contains(e.ProductID) {
		return false
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = l.now()
	}
	l.entries = append([]Entry{e}, l.entries...)
	l.save()
	return true
}

// Remove drops a product from the list and reports whether it was present.
func (l *List) Remove(productID string) bool {
	for i := range l.entries {
		if l.entries[i].ProductID == productID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.save()
			return true
		}
	}
	return false
}

// Toggle adds the entry if absent and removes it if present. Returns true
// if the product is saved after the call.
func (l *List) Toggle(e Entry) bool {
	if l.Remove(e.ProductID) {
		return false
	}
	l.Add(e)
	return true
}

// Contains reports whether a product is saved.
func (l *List) Contains(productID string) bool {
	for i := range l.entries {
		if l.entries[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the saved products, newest first.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of saved products.
func (l *List) Len() int {
	return len(l.entries)
}

func (l *List) save() {
	if l.store == nil {
		return
	}
	if len(l.entries) == 0 {
		if err := l.store.Delete(l.key); err != nil {
			l.logger.Warn("discarding wishlist failed", "key", l.key, "err", err)
		}
		return
	}
	data, err := json.Marshal(l.entries)
	if err != nil {
		l.logger.Warn("encoding wishlist failed", "key", l.key, "err", err)
		return
	}
	if err := l.store.Set(l.key, data); err != nil {
		l.logger.Warn("saving wishlist failed", "key", l.key, "err", err)
	}
}

func (l *List) load() {
	if l.store == nil {
		return
	}
	data, err := l.store.Get(l.key)
	if err != nil {
		l.logger.Warn("loading wishlist failed", "key", l.key, "err", err)
		return
	}
	if len(data) == 0 {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt data starts the list fresh rather than failing the session.
		l.logger.Warn("parsing wishlist failed", "key", l.key, "err", err)
		return
	}
	l.entries = entries
}
