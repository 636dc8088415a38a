package cart

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// CheckoutState tracks the checkout builder's progress through one attempt.
type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateValidating
	StateSubmitting
	StateRedirecting
	StateFailed
)

// String returns the state name for logging.
func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// CheckoutLine is one line of the payload handed to the checkout gateway.
type CheckoutLine struct {
	VariantID string
	Quantity  int
}

// CheckoutGateway creates a remote checkout session from cart lines and
// returns the hosted checkout URL.
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, lines []CheckoutLine) (string, error)
}

// VariantCatalog resolves a variant id from a product and its attributes.
// Consulted only for items that reached checkout without a variant id.
type VariantCatalog interface {
	Find(ctx context.Context, productID string, attrs map[string]string) (string, error)
}

// CheckoutAttempt carries the cart lines captured at Begin. Submissions
// operate on this snapshot, never on the live store.
type CheckoutAttempt struct {
	items []LineItem
}

// CheckoutResult is the outcome of a successful submission.
type CheckoutResult struct {
	URL      string
	resolved map[string]string
}

// CheckoutBuilder translates the line item store into a remote checkout
// session. One attempt is split into Begin, Submit, and Finish: Begin and
// Finish touch the store and the builder's state and must run on the event
// loop, while Submit only works the snapshot and the network, so a caller
// may run it from a background command. Retries are not idempotent: every
// successful call to the gateway creates a new session server-side. That is
// accepted behavior, not a bug.
type CheckoutBuilder struct {
	store    *Store
	gateway  CheckoutGateway
	catalog  VariantCatalog
	state    CheckoutState
	inFlight bool
	logger   *log.Logger
}

// NewCheckoutBuilder creates a builder over the store. catalog may be nil,
// in which case items without a variant id fail validation outright.
func NewCheckoutBuilder(store *Store, gateway CheckoutGateway, catalog VariantCatalog, logger *log.Logger) *CheckoutBuilder {
	if logger == nil {
		logger = log.Default()
	}
	return &CheckoutBuilder{store: store, gateway: gateway, catalog: catalog, logger: logger}
}

// State returns the current checkout state.
func (b *CheckoutBuilder) State() CheckoutState {
	return b.state
}

// Busy returns true while a submission is awaiting a response.
func (b *CheckoutBuilder) Busy() bool {
	return b.inFlight
}

// Begin validates the cart and snapshots its lines into an attempt. The
// builder is busy from here until Finish; a second Begin in that window
// returns ErrCheckoutInFlight.
func (b *CheckoutBuilder) Begin() (*CheckoutAttempt, error) {
	if b.inFlight {
		return nil, ErrCheckoutInFlight
	}
	b.state = StateValidating
	items := b.store.Items()
	if len(items) == 0 {
		b.state = StateFailed
		return nil, ErrEmptyCart
	}
	b.inFlight = true
	b.state = StateSubmitting
	return &CheckoutAttempt{items: items}, nil
}

// Submit resolves missing variant ids against the catalog and posts the
// attempt to the gateway. It reads only the attempt snapshot, never the
// store or the builder's state.
func (b *CheckoutBuilder) Submit(ctx context.Context, attempt *CheckoutAttempt) (*CheckoutResult, error) {
	resolved := make(map[string]string)
	lines := make([]CheckoutLine, 0, len(attempt.items))
	for _, item := range attempt.items {
		variantID := item.VariantID
		if variantID == "" {
			id, err := b.resolveVariant(ctx, item)
			if err != nil {
				return nil, &InvalidLineItemError{Item: item, Err: err}
			}
			variantID = id
			resolved[item.ID] = id
		}
		lines = append(lines, CheckoutLine{VariantID: variantID, Quantity: item.Quantity})
	}

	b.logger.Info("submitting checkout", "lines", len(lines))
	url, err := b.gateway.CreateCheckout(ctx, lines)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{URL: url, resolved: resolved}, nil
}

// Finish records the attempt's outcome and releases the busy flag. On
// success resolved variant ids are written back and the store is cleared;
// on failure the store is left untouched so the user can retry.
func (b *CheckoutBuilder) Finish(result *CheckoutResult, err error) {
	b.inFlight = false
	if err != nil {
		b.state = StateFailed
		b.logger.Warn("checkout failed", "err", err)
		return
	}
	for itemID, variantID := range result.resolved {
		b.store.SetVariantID(itemID, variantID)
	}
	b.state = StateRedirecting
	b.store.Clear()
	b.logger.Info("checkout session created", "url", result.URL)
}

// Checkout runs one full attempt synchronously: validate, resolve missing
// variants, submit, and on success clear the store and return the checkout
// URL for the caller to navigate to. Re-entrant calls while a submission is
// in flight are no-ops.
func (b *CheckoutBuilder) Checkout(ctx context.Context) (string, error) {
	attempt, err := b.Begin()
	if err != nil {
		return "", err
	}
	result, err := b.Submit(ctx, attempt)
	b.Finish(result, err)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

func (b *CheckoutBuilder) resolveVariant(ctx context.Context, item LineItem) (string, error) {
	if b.catalog == nil {
		return "", errors.New("no variant catalog configured")
	}
	variantID, err := b.catalog.Find(ctx, item.ProductID, item.Attributes)
	if err != nil {
		return "", err
	}
	if variantID == "" {
		return "", errors.New("variant not found")
	}
	return variantID, nil
}
