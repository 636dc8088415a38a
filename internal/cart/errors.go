package cart

import (
	"errors"
	"fmt"
)

// ErrInvalidItem is returned when an add request is malformed: a line item
// needs at least a product id and a title.
var ErrInvalidItem = errors.New("cart: item requires a product id and title")

// ErrEmptyCart is returned when checkout is attempted with no items. No
// network request is issued.
var ErrEmptyCart = errors.New("cart: cart is empty")

// ErrCheckoutInFlight is returned when checkout is called while a previous
// submission is still awaiting a response. The call is a no-op: nothing is
// sent and cart state is untouched.
var ErrCheckoutInFlight = errors.New("cart: checkout already in progress")

// InvalidLineItemError is returned when a line item has no variant id and
// the catalog fallback could not resolve one at checkout time.
type InvalidLineItemError struct {
	Item LineItem
	Err  error
}

func (e *InvalidLineItemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cart: no resolvable variant for %q: %v", e.Item.Title, e.Err)
	}
	return fmt.Sprintf("cart: no resolvable variant for %q", e.Item.Title)
}

func (e *InvalidLineItemError) Unwrap() error {
	return e.Err
}
