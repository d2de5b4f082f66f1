package services

import (
	"fleet-dispatch-service/internal/domain"
	"slices"
)

// A fleet column on the planning board: the fleet and its stops in route order.
type FleetColumn struct {
	Fleet domain.Fleet
	Stops []domain.DeliveryStop
}

// A printable dispatch sheet for one fleet: the resolved crew and the fleet's
// stops with 1-based sequence numbers in route order. Sheets are produced for
// every fleet, including those without load, so empty fleets stay visible.
type DispatchSheet struct {
	FleetID     string
	FleetNumber string
	Crew        []domain.TeamMember
	Stops       []SequencedStop
}

type SequencedStop struct {
	Sequence int
	Stop     domain.DeliveryStop
}

// UnassignedStops returns the stops without a fleet reference, sorted
// ascending by order index. An empty slice is returned when no plan is active.
func (d *Dispatcher) UnassignedStops() []domain.DeliveryStop {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopsByFleetLocked("")
}

// FleetStops returns the stops assigned to one fleet, sorted ascending by
// order index. This ordering drives dispatch-sheet sequence numbering and must
// stay deterministic.
func (d *Dispatcher) FleetStops(fleetID string) ([]domain.DeliveryStop, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fleetIndexLocked(fleetID) < 0 {
		return nil, domain.ErrFleetNotFound
	}
	return d.stopsByFleetLocked(fleetID), nil
}

// Board returns the full planning-board projection: the unassigned column plus
// one column per fleet, all in route order.
func (d *Dispatcher) Board() ([]domain.DeliveryStop, []FleetColumn) {
	d.mu.Lock()
	defer d.mu.Unlock()

	columns := make([]FleetColumn, 0, len(d.fleets))
	for _, f := range d.fleetsCopyLocked() {
		columns = append(columns, FleetColumn{
			Fleet: f,
			Stops: d.stopsByFleetLocked(f.ID),
		})
	}

	return d.stopsByFleetLocked(""), columns
}

// DispatchSheets builds the dispatch-sheet projection for every fleet.
func (d *Dispatcher) DispatchSheets() []DispatchSheet {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheets := make([]DispatchSheet, 0, len(d.fleets))
	for _, f := range d.fleets {
		stops := d.stopsByFleetLocked(f.ID)
		seq := make([]SequencedStop, 0, len(stops))
		for i, s := range stops {
			seq = append(seq, SequencedStop{Sequence: i + 1, Stop: s})
		}

		sheets = append(sheets, DispatchSheet{
			FleetID:     f.ID,
			FleetNumber: f.Number,
			Crew:        d.crewLocked(f),
			Stops:       seq,
		})
	}

	return sheets
}

func (d *Dispatcher) stopsByFleetLocked(fleetID string) []domain.DeliveryStop {
	out := []domain.DeliveryStop{}
	if d.plan == nil {
		return out
	}

	for _, s := range d.plan.Stops {
		if s.AssignedFleetID == fleetID {
			out = append(out, s)
		}
	}

	// Order indices are unique within a plan; the ID tie-breaker only guards
	// determinism against a collaborator that violated that.
	slices.SortFunc(out, func(a, b domain.DeliveryStop) int {
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex - b.OrderIndex
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return out
}
