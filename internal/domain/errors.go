package domain

import "errors"

var (
	// ErrNotFound: a user, contact or handle lookup missed. Always
	// recoverable; the dialog reports it and stays usable.
	ErrNotFound = errors.New("not found")

	// ErrBadAmount: transfer amount text did not parse as a positive decimal.
	ErrBadAmount = errors.New("bad amount")

	// ErrNoSelection: a dialog step expected a previously selected contact
	// or direction that is absent. Resets the dialog instead of crashing.
	ErrNoSelection = errors.New("no selection")
)
