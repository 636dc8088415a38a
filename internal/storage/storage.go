// Package storage provides the durable key-value slot the cart snapshot and
// wishlist are persisted to, one slot per user.
package storage

// Store is a minimal key-value slot. A missing key is not an error: Get
// returns (nil, nil) so callers can treat absent and empty alike.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
