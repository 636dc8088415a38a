package wishlist

import (
	"testing"

	"github.com/bungibobby/shop-terminal-go/internal/storage"
)

func entry(id string) Entry {
	return Entry{ProductID: id, Title: "Item " + id, Price: 30}
}

func TestAddAndContains(t *testing.T) {
	l := New(nil, "", nil)

	if !l.Add(entry("p1")) {
		t.Error("expected first add to report true")
	}
	if l.Add(entry("p1")) {
		t.Error("expected duplicate add to report false")
	}
	if !l.Contains("p1") {
		t.Error("expected p1 saved")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", l.Len())
	}
}

func TestNewestFirst(t *testing.T) {
	l := New(nil, "", nil)
	l.Add(entry("p1"))
	l.Add(entry("p2"))

	entries := l.Entries()
	if entries[0].ProductID != "p2" {
		t.Errorf("expected newest entry first, got %q", entries[0].ProductID)
	}
}

func TestRemove(t *testing.T) {
	l := New(nil, "", nil)
	l.Add(entry("p1"))

	if !l.Remove("p1") {
		t.Error("expected Remove to report true")
	}
	if l.Remove("p1") {
		t.Error("expected Remove to report false for missing entry")
	}
}

func TestToggle(t *testing.T) {
	l := New(nil, "", nil)

	if !l.Toggle(entry("p1")) {
		t.Error("expected toggle to save the entry")
	}
	if l.Toggle(entry("p1")) {
		t.Error("expected second toggle to remove the entry")
	}
	if l.Contains("p1") {
		t.Error("expected p1 gone after double toggle")
	}
}

func TestPersistsAcrossSessions(t *testing.T) {
	store := storage.NewMemStore()

	l := New(store, "alice-wishlist", nil)
	l.Add(entry("p1"))
	l.Add(entry("p2"))

	// A new session over the same slot sees the saved entries.
	reloaded := New(store, "alice-wishlist", nil)
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", reloaded.Len())
	}
	if reloaded.Entries()[0].ProductID != "p2" {
		t.Errorf("expected order preserved, got %q first", reloaded.Entries()[0].ProductID)
	}
}

func TestEmptyListDeletesSlot(t *testing.T) {
	store := storage.NewMemStore()

	l := New(store, "bob-wishlist", nil)
	l.Add(entry("p1"))
	l.Remove("p1")

	data, _ := store.Get("bob-wishlist")
	if data != nil {
		t.Errorf("expected slot deleted when list empties, got %q", data)
	}
}

func TestCorruptDataStartsFresh(t *testing.T) {
	store := storage.NewMemStore()
	store.Set("carol-wishlist", []byte("{broken"))

	l := New(store, "carol-wishlist", nil)
	if l.Len() != 0 {
		t.Errorf("expected fresh list from corrupt data, got %d entries", l.Len())
	}

	// Still usable afterwards.
	if !l.Add(entry("p1")) {
		t.Error("expected add to work after corrupt load")
	}
}
