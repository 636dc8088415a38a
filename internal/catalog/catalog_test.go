package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bungibobby/shop-terminal-go/internal/storefront"
)

type fakeSource struct {
	products map[string]*storefront.Product
	calls    int
	err      error
}

func (s *fakeSource) GetProduct(ctx context.Context, handle string) (*storefront.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[handle]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

func hoodieProduct() *storefront.Product {
	return &storefront.Product{
		ID:     "prod-001",
		Handle: "bungi-x-bobby-hoodie",
		Title:  "BUNGI X BOBBY Hoodie",
		Price:  60.0,
		Variants: []storefront.Variant{
			{ID: "var-1001", Available: false, Options: map[string]string{"size": "S"}},
			{ID: "var-1002", Available: true, Options: map[string]string{"size": "M"}},
			{ID: "var-1003", Available: true, Options: map[string]string{"size": "L"}},
		},
	}
}

func TestProductUsesCache(t *testing.T) {
	source := &fakeSource{products: map[string]*storefront.Product{
		"bungi-x-bobby-hoodie": hoodieProduct(),
	}}
	c := New(source, time.Minute)

	for i := 0; i < 3; i++ {
		p, err := c.Product(context.Background(), "bungi-x-bobby-hoodie")
		if err != nil {
			t.Fatalf("Product failed: %v", err)
		}
		if p.Title != "BUNGI X BOBBY Hoodie" {
			t.Errorf("unexpected title %q", p.Title)
		}
	}

	if source.calls != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", source.calls)
	}
}

func TestFindResolvesVariantByAttributes(t *testing.T) {
	source := &fakeSource{products: map[string]*storefront.Product{
		"bungi-x-bobby-hoodie": hoodieProduct(),
	}}
	c := New(source, time.Minute)

	id, err := c.Find(context.Background(), "bungi-x-bobby-hoodie", map[string]string{"size": "M"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if id != "var-1002" {
		t.Errorf("expected var-1002, got %q", id)
	}
}

func TestFindNoAttributesUsesDefaultVariant(t *testing.T) {
	source := &fakeSource{products: map[string]*storefront.Product{
		"bungi-x-bobby-hoodie": hoodieProduct(),
	}}
	c := New(source, time.Minute)

	id, err := c.Find(context.Background(), "bungi-x-bobby-hoodie", nil)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	// First available variant, not the unavailable S.
	if id != "var-1002" {
		t.Errorf("expected var-1002, got %q", id)
	}
}

func TestFindNoMatchingVariant(t *testing.T) {
	source := &fakeSource{products: map[string]*storefront.Product{
		"bungi-x-bobby-hoodie": hoodieProduct(),
	}}
	c := New(source, time.Minute)

	_, err := c.Find(context.Background(), "bungi-x-bobby-hoodie", map[string]string{"size": "XXL"})
	if !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestFindBypassesCache(t *testing.T) {
	source := &fakeSource{products: map[string]*storefront.Product{
		"bungi-x-bobby-hoodie": hoodieProduct(),
	}}
	c := New(source, time.Minute)

	// Warm the cache, then resolve twice. Each Find hits upstream for fresh
	// variant data.
	if _, err := c.Product(context.Background(), "bungi-x-bobby-hoodie"); err != nil {
		t.Fatalf("Product failed: %v", err)
	}
	c.Find(context.Background(), "bungi-x-bobby-hoodie", map[string]string{"size": "M"})
	c.Find(context.Background(), "bungi-x-bobby-hoodie", map[string]string{"size": "L"})

	if source.calls != 3 {
		t.Errorf("expected 3 upstream fetches, got %d", source.calls)
	}
}

func TestFindUpstreamError(t *testing.T) {
	source := &fakeSource{err: errors.New("storefront down")}
	c := New(source, time.Minute)

	if _, err := c.Find(context.Background(), "anything", nil); err == nil {
		t.Error("expected error from upstream failure")
	}
}
