package models

import "fmt"

// SettlementStatus is the lifecycle state of a settlement.
// Settlements start pending and end in exactly one terminal state:
//
//	pending -> completed
//	pending -> cancelled
type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "pending"
	SettlementCompleted SettlementStatus = "completed"
	SettlementCancelled SettlementStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s SettlementStatus) Terminal() bool {
	return s == SettlementCompleted || s == SettlementCancelled
}

// ParseSettlementStatus validates a status string (e.g., a query filter).
func ParseSettlementStatus(s string) (SettlementStatus, error) {
	switch SettlementStatus(s) {
	case SettlementPending, SettlementCompleted, SettlementCancelled:
		return SettlementStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown settlement status %q", ErrInvalidInput, s)
}

// Settlement represents a payment between group members recorded against a
// computed simplified transfer. It is a confirmation ledger entry, not an
// input to the balance computation (completed settlements are netted out as
// synthetic transfers at query time).
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromUserID is the debtor settling up.
	FromUserID string

	// ToUserID is the creditor being paid.
	ToUserID string

	// Amount is the payment amount in cents. Always positive.
	Amount int64

	// Status is the lifecycle state.
	Status SettlementStatus

	// Notes is an optional free-text description.
	Notes string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CompletedAt is set when the settlement transitions to completed.
	CompletedAt int64

	// CompletedBy is the user who confirmed the payment.
	CompletedBy string

	// CancelledAt is set when the settlement transitions to cancelled.
	CancelledAt int64
}
