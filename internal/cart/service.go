package cart

import (
	"context"

	"github.com/charmbracelet/log"
)

// Service is the one cart instance handed to UI components. It wires the
// store, discount resolver, persistence, and checkout builder together:
// mutation, re-resolution, total recomputation, and snapshot write happen in
// order on every operation, with no global state involved.
type Service struct {
	store     *Store
	resolver  *Resolver
	persister *Persister
	builder   *CheckoutBuilder
}

// NewService assembles a cart service. persister may be nil (no durable
// storage, e.g. in tests); resolver may be nil (no discounts configured).
// If the persister holds a previous snapshot, the store is hydrated from it
// and discounts are re-resolved against the current rule table.
func NewService(resolver *Resolver, gateway CheckoutGateway, catalog VariantCatalog, persister *Persister, logger *log.Logger) *Service {
	svc := &Service{
		store:     NewStore(),
		resolver:  resolver,
		persister: persister,
	}
	svc.builder = NewCheckoutBuilder(svc.store, gateway, catalog, logger)

	if persister != nil {
		items := persister.Load()
		if resolver != nil {
			for i := range items {
				items[i] = resolver.Apply(items[i])
			}
		}
		svc.store.Hydrate(items)
		svc.store.Subscribe(persister.Save)
	}

	return svc
}

// Add resolves discounts for the candidate and merges it into the store.
func (s *Service) Add(candidate LineItem, qty int) (LineItem, error) {
	if s.resolver != nil {
		candidate = s.resolver.Apply(candidate)
	}
	return s.store.AddOrIncrement(candidate, qty)
}

// SetQuantity updates an item's quantity; zero or below removes it.
func (s *Service) SetQuantity(id string, qty int) {
	s.store.SetQuantity(id, qty)
}

// Remove deletes an item and reports whether anything was removed.
func (s *Service) Remove(id string) bool {
	return s.store.Remove(id)
}

// Clear empties the cart.
func (s *Service) Clear() {
	s.store.Clear()
}

// Items returns the current line items, newest first.
func (s *Service) Items() []LineItem {
	return s.store.Items()
}

// IsEmpty returns true if the cart holds no items.
func (s *Service) IsEmpty() bool {
	return s.store.IsEmpty()
}

// Totals recomputes the cart summary.
func (s *Service) Totals() Totals {
	return ComputeTotals(s.store.Items())
}

// Checkout submits the cart for a hosted checkout session.
func (s *Service) Checkout(ctx context.Context) (string, error) {
	return s.builder.Checkout(ctx)
}

// BeginCheckout snapshots the cart into an attempt and marks checkout busy.
// Callers that submit from a background command use this with SubmitCheckout
// and FinishCheckout instead of the synchronous Checkout.
func (s *Service) BeginCheckout() (*CheckoutAttempt, error) {
	return s.builder.Begin()
}

// SubmitCheckout posts the attempt to the gateway. Safe to call off the
// event loop; it never touches the store.
func (s *Service) SubmitCheckout(ctx context.Context, attempt *CheckoutAttempt) (*CheckoutResult, error) {
	return s.builder.Submit(ctx, attempt)
}

// FinishCheckout records the attempt's outcome, clearing the cart on
// success. Must run on the event loop.
func (s *Service) FinishCheckout(result *CheckoutResult, err error) {
	s.builder.Finish(result, err)
}

// CheckoutBusy returns true while a checkout request is in flight. The view
// consults this instead of tracking its own flag.
func (s *Service) CheckoutBusy() bool {
	return s.builder.Busy()
}
