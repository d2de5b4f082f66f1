package domain

// Represents one vehicle/crew unit for the day.
// Number is the user-chosen label and must be unique among existing fleets.
// MemberIDs holds roster identifiers in add order; the canonical TeamMember
// record is resolved at read time, so roster edits are never stale in a crew.
// A member identifier appears in at most one fleet across the whole collection.
type Fleet struct {
	ID        string
	Number    string
	MemberIDs []string
}

// HasMember reports whether the fleet's crew contains the given member.
func (f *Fleet) HasMember(memberID string) bool {
	for _, id := range f.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}
