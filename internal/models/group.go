package models

// Member is one participant of a group: an opaque user ID plus the display
// name resolved at group-creation time. The ledger itself never talks to a
// user service; names travel with the group.
type Member struct {
	// UserID is the opaque identifier of the participant.
	UserID string

	// Name is the display name shown in balances and settlements.
	Name string
}

// Group represents a set of people who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the list of participants in this group.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberNames returns the userID -> display name mapping for the group.
func (g *Group) MemberNames() map[string]string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.UserID] = m.Name
	}
	return names
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
