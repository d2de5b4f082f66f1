package services

import (
	"fleet-dispatch-service/internal/domain"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CreateFleet adds a vehicle/crew unit with the given number. The number must
// be non-empty and not an exact match of any existing fleet's number.
func (d *Dispatcher) CreateFleet(number string) (domain.Fleet, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return domain.Fleet{}, fmt.Errorf("create fleet: number must be non-empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, f := range d.fleets {
		if f.Number == number {
			return domain.Fleet{}, domain.ErrDuplicateFleetNumber
		}
	}

	fleet := domain.Fleet{
		ID:        uuid.NewString(),
		Number:    number,
		MemberIDs: []string{},
	}
	d.fleets = append(d.fleets, fleet)
	d.persistLocked()

	return fleet, nil
}

// RemoveFleet deletes a fleet. Crew members return to the available pool
// implicitly, and every stop that referenced the fleet is reset to unassigned
// atomically with the deletion so no stop is left dangling.
func (d *Dispatcher) RemoveFleet(fleetID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.fleetIndexLocked(fleetID)
	if idx < 0 {
		return domain.ErrFleetNotFound
	}
	d.fleets = append(d.fleets[:idx], d.fleets[idx+1:]...)

	if d.plan != nil {
		for i := range d.plan.Stops {
			if d.plan.Stops[i].AssignedFleetID == fleetID {
				d.plan.Stops[i].AssignedFleetID = ""
			}
		}
	}
	d.persistLocked()

	return nil
}

// AddMemberToFleet appends a roster member to a fleet's crew. The member must
// not already appear in any fleet's crew, including the target itself; on
// violation nothing is mutated.
func (d *Dispatcher) AddMemberToFleet(fleetID, memberID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.fleetIndexLocked(fleetID)
	if idx < 0 {
		return domain.ErrFleetNotFound
	}
	if d.memberIndexLocked(memberID) < 0 {
		return domain.ErrMemberNotFound
	}

	for _, f := range d.fleets {
		if f.HasMember(memberID) {
			return domain.ErrMemberAlreadyAssigned
		}
	}

	d.fleets[idx].MemberIDs = append(d.fleets[idx].MemberIDs, memberID)
	d.persistLocked()

	return nil
}

// RemoveMemberFromFleet removes a member from one fleet's crew. Removing a
// member that is not in the crew is a no-op.
func (d *Dispatcher) RemoveMemberFromFleet(fleetID, memberID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.fleetIndexLocked(fleetID)
	if idx < 0 {
		return domain.ErrFleetNotFound
	}

	before := len(d.fleets[idx].MemberIDs)
	d.fleets[idx].MemberIDs = removeID(d.fleets[idx].MemberIDs, memberID)
	if len(d.fleets[idx].MemberIDs) != before {
		d.persistLocked()
	}

	return nil
}

// Fleets returns the fleet collection in creation order.
func (d *Dispatcher) Fleets() []domain.Fleet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fleetsCopyLocked()
}

// Crew resolves a fleet's member identifiers to the canonical roster records,
// in add order. Identifiers without a roster record are skipped; member
// removal cascades, so this only happens on a stale external snapshot.
func (d *Dispatcher) Crew(fleetID string) ([]domain.TeamMember, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.fleetIndexLocked(fleetID)
	if idx < 0 {
		return nil, domain.ErrFleetNotFound
	}
	return d.crewLocked(d.fleets[idx]), nil
}

func (d *Dispatcher) crewLocked(f domain.Fleet) []domain.TeamMember {
	crew := make([]domain.TeamMember, 0, len(f.MemberIDs))
	for _, id := range f.MemberIDs {
		if mi := d.memberIndexLocked(id); mi >= 0 {
			crew = append(crew, d.members[mi])
		}
	}
	return crew
}

func (d *Dispatcher) fleetIndexLocked(fleetID string) int {
	for i := range d.fleets {
		if d.fleets[i].ID == fleetID {
			return i
		}
	}
	return -1
}

func (d *Dispatcher) fleetsCopyLocked() []domain.Fleet {
	out := make([]domain.Fleet, len(d.fleets))
	for i, f := range d.fleets {
		ids := make([]string, len(f.MemberIDs))
		copy(ids, f.MemberIDs)
		f.MemberIDs = ids
		out[i] = f
	}
	return out
}
