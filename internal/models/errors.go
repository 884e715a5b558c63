package models

import "errors"

// Typed errors surfaced by services and storage. Handlers translate these
// into HTTP status codes; callers can test them with errors.Is.
var (
	// ErrInvalidInput rejects malformed mutations before any write
	// (non-positive amounts, empty IDs, unknown members).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates a settlement lifecycle operation was
	// attempted on a settlement that is no longer pending.
	ErrInvalidTransition = errors.New("settlement is not pending")

	// ErrConflict indicates a conditional update lost a race: the settlement
	// was pending when read but a concurrent writer transitioned it first.
	// Callers should reload and retry the intended transition once.
	ErrConflict = errors.New("concurrent settlement update")
)
