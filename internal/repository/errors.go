// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrInvalidState signals a lifecycle transition that is
// no longer legal (approving an already-resolved request).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update collides with
// existing state, such as a duplicate club name or a head admin who
// already runs a club. Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when a request or booking is not in the
// state required for the attempted transition. Resolved rows are
// terminal; a second approve/reject surfaces this error and mutates
// nothing.
var ErrInvalidState = errors.New("invalid state")

// StateError carries the row's current status alongside ErrInvalidState
// so handlers can report which terminal state blocked the transition.
// errors.Is(err, ErrInvalidState) matches it.
type StateError struct {
	Current string
}

func (e *StateError) Error() string { return "already " + e.Current }

func (e *StateError) Unwrap() error { return ErrInvalidState }

// ErrInsufficientSeats is returned when a booking asks for more seats
// than the poster has left. The check and the decrement are a single
// conditional UPDATE, so two racing bookings can never both pass.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrEmailExists is returned on registration with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrClubNameExists is returned when a club (or club request) name
// collides with an existing club.
var ErrClubNameExists = errors.New("club name already exists")
