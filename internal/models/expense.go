package models

// ExpenseShare is one participant's stored share of an expense, in cents.
// Shares are resolved from the split method before the expense is persisted,
// so readers never need to know how the split was originally chosen.
type ExpenseShare struct {
	// UserID is the participant who owes this share.
	UserID string

	// Amount is the share in cents. All shares of an expense sum to the
	// expense amount exactly.
	Amount int64
}

// Expense represents money fronted by one group member and split among
// participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a short human-readable label (e.g., "Groceries").
	Description string

	// Amount is the total expense amount in cents.
	Amount int64

	// PaidBy is the user who fronted the full amount.
	PaidBy string

	// SplitMethod records how the shares were derived (equal, percentage,
	// exact, shares). Informational only; balance math reads Shares.
	SplitMethod string

	// Shares is the resolved per-participant split. May be empty for
	// expenses recorded without a split, which then count fully against
	// the payer.
	Shares []ExpenseShare

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
