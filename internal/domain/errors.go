package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the backend refused a transition because the
	// record already moved on (e.g. cancelling an accepted order).
	ErrConflict = errors.New("conflict")
)
