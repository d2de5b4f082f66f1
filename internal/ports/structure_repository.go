package ports

import "fleet-dispatch-service/internal/domain"

// Port: snapshot storage for the day's staffing structure (roster + fleets).
// The active route plan is never persisted; only the structure
// survives a restart.
type StructureRepository interface {
	// Load the persisted roster and fleet structure, in stored order.
	LoadStructure() ([]domain.TeamMember, []domain.Fleet, error)
	// Replace the persisted structure atomically with the given state.
	SaveStructure(members []domain.TeamMember, fleets []domain.Fleet) error
}
