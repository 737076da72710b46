package domain

import "errors"

// Domain errors - these represent business-level outcomes.
// They are distinct from infrastructure errors (network, storage, etc.),
// so callers can tell "no such entity" apart from "the upstream is down".

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderLineNotFound indicates the order has no line with that ID.
	ErrOrderLineNotFound = errors.New("order line not found")
)
