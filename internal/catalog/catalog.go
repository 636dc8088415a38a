// Package catalog provides read-only product lookups with variant
// resolution, backed by the storefront API and a TTL cache.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bungibobby/shop-terminal-go/internal/cache"
	"github.com/bungibobby/shop-terminal-go/internal/storefront"
)

// ErrVariantNotFound is returned when no variant of a product matches the
// requested attributes.
var ErrVariantNotFound = errors.New("catalog: no variant matches the requested attributes")

// ProductSource fetches products from the storefront API.
type ProductSource interface {
	GetProduct(ctx context.Context, handle string) (*storefront.Product, error)
}

// Catalog caches product lookups and resolves variant ids from product
// attributes. It never mutates anything; it is the read-only collaborator
// the cart consults when a line item lacks a variant id.
type Catalog struct {
	source ProductSource
	cache  *cache.Cache[string, *storefront.Product]
}

// New creates a catalog over the given source with the given cache TTL.
func New(source ProductSource, ttl time.Duration) *Catalog {
	return &Catalog{
		source: source,
		cache:  cache.New[string, *storefront.Product](ttl),
	}
}

// Product returns a product by handle, from cache when fresh. Concurrent
// lookups for the same handle share one upstream fetch.
func (c *Catalog) Product(ctx context.Context, handle string) (*storefront.Product, error) {
	return c.cache.GetOrLoad(handle, func() (*storefront.Product, error) {
		return c.source.GetProduct(ctx, handle)
	})
}

// Find resolves a variant id for a product and attribute set. The product
// is fetched fresh, bypassing the cache: at checkout time a stale variant id
// is worse than an extra request. Items with no attributes resolve to the
// product's default variant.
func (c *Catalog) Find(ctx context.Context, productID string, attrs map[string]string) (string, error) {
	product, err := c.source.GetProduct(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("fetching product %q: %w", productID, err)
	}
	c.cache.Set(productID, product)

	if len(attrs) == 0 {
		if v := product.DefaultVariant(); v != nil {
			return v.ID, nil
		}
		return "", ErrVariantNotFound
	}

	if v := product.FindVariant(attrs); v != nil {
		return v.ID, nil
	}
	return "", ErrVariantNotFound
}
