package storefront

import (
	"errors"
	"fmt"
)

var (
	ErrFetch              = errors.New("fetch failed")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrSearchFailed       = errors.New("search failed")
	ErrAuthRequired       = errors.New("login required")
	ErrDuplicateItem      = errors.New("item already in cart")
	ErrCart               = errors.New("cart update failed")
)

const (
	msgProductsFetch = "Could not fetch products. Check that the backend is running, reachable and returns valid JSON."
	msgCartFetch     = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	msgAuthRequired  = "Login to add an item to the Cart"
	msgDuplicateItem = "Item already in cart. Use the cart sidebar to update quantity or remove item."
)

// Error is what every storefront operation returns on failure. Kind is one
// of the Err* sentinels and Message is safe to show the shopper.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// Message returns the shopper-facing text of err.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func newError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}
