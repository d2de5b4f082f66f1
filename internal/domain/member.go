package domain

// Role of a person in the staffing pool.
type Role string

const (
	RoleDriver   Role = "Driver"
	RoleHelper   Role = "Helper"
	RoleOperator Role = "Operator"
)

// roleSpecificTypes is the fixed role -> permitted specific-type table.
// The first entry of each list is the role's default.
var roleSpecificTypes = map[Role][]string{
	RoleDriver:   {"Driver", "Driver I", "Bulk Driver"},
	RoleHelper:   {"Distribution Helper"},
	RoleOperator: {"Bulk Operator"},
}

func ValidRole(r Role) bool {
	_, ok := roleSpecificTypes[r]
	return ok
}

// SpecificTypes returns the permitted specific types for a role, in display order.
func SpecificTypes(r Role) []string {
	types := roleSpecificTypes[r]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

func DefaultSpecificType(r Role) string {
	types := roleSpecificTypes[r]
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

func AllowedSpecificType(r Role, specificType string) bool {
	for _, t := range roleSpecificTypes[r] {
		if t == specificType {
			return true
		}
	}
	return false
}

// Represents one person in the staffing pool.
// StatusReason is meaningful only while Active is false.
type TeamMember struct {
	ID           string
	Name         string
	Role         Role
	SpecificType string
	Active       bool
	StatusReason string
}
