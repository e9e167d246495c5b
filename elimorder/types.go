// Package elimorder: sentinel errors and the typed treewidth failure.
package elimorder

import (
	"errors"
	"fmt"
)

// Sentinel errors for order validation.
var (
	// ErrNilModel indicates a nil model was passed in.
	ErrNilModel = errors.New("elimorder: model is nil")

	// ErrOrderInvalid indicates the supplied order is not exactly a
	// permutation of the model's variables (missing, duplicated or unknown
	// entries).
	ErrOrderInvalid = errors.New("elimorder: order is not a permutation of the model variables")

	// ErrTreewidthExceeded indicates the induced width of a validated order
	// is above the configured ceiling. Returned wrapped in a *TreewidthError
	// carrying the achieved width; match with errors.Is.
	ErrTreewidthExceeded = errors.New("elimorder: treewidth ceiling exceeded")
)

// TreewidthError reports an order whose induced width exceeds the ceiling.
// It wraps ErrTreewidthExceeded so callers can match either the sentinel
// (errors.Is) or the concrete type (errors.As) to read the achieved width.
type TreewidthError struct {
	// Width is the induced width achieved by the rejected order.
	Width int

	// Ceiling is the configured maximum treewidth.
	Ceiling int
}

// Error implements the error interface.
func (e *TreewidthError) Error() string {
	return fmt.Sprintf("%v: induced width %d, ceiling %d", ErrTreewidthExceeded, e.Width, e.Ceiling)
}

// Unwrap exposes the ErrTreewidthExceeded sentinel.
func (e *TreewidthError) Unwrap() error { return ErrTreewidthExceeded }
