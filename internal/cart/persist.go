package cart

import (
	"github.com/charmbracelet/log"

	"github.com/bungibobby/shop-terminal-go/internal/storage"
)

// Persister writes cart snapshots to a storage slot. Saves are best-effort:
// the in-memory mutation already succeeded, so a failed write is logged as a
// warning and never rolled back or propagated.
type Persister struct {
	store  storage.Store
	key    string
	logger *log.Logger
}

// NewPersister creates a persister bound to one storage key (one user's
// cart slot).
func NewPersister(store storage.Store, key string, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.Default()
	}
	return &Persister{store: store, key: key, logger: logger}
}

// Save writes a snapshot of items. An empty cart deletes the slot instead of
// writing an empty snapshot, so a completed checkout discards the snapshot
// entirely.
func (p *Persister) Save(items []LineItem) {
	if len(items) == 0 {
		if err := p.store.Delete(p.key); err != nil {
			p.logger.Warn("discarding cart snapshot failed", "key", p.key, "err", err)
		}
		return
	}

	data, err := EncodeSnapshot(items)
	if err != nil {
		p.logger.Warn("encoding cart snapshot failed", "key", p.key, "err", err)
		return
	}
	if err := p.store.Set(p.key, data); err != nil {
		p.logger.Warn("saving cart snapshot failed", "key", p.key, "err", err)
	}
}

// Load reads the stored snapshot. Missing or unreadable data yields an empty
// list; hydration must always succeed.
func (p *Persister) Load() []LineItem {
	data, err := p.store.Get(p.key)
	if err != nil {
		p.logger.Warn("loading cart snapshot failed", "key", p.key, "err", err)
		return nil
	}
	return DecodeSnapshot(data)
}
