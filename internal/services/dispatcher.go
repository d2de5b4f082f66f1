package services

import (
	"context"
	"fleet-dispatch-service/internal/domain"
	"fleet-dispatch-service/internal/ports"
	"fmt"
	"log"
	"sync"
)

// Dispatcher owns all application state: the active route plan, the roster and
// the day's fleet structure. Every mutation goes through its operation set;
// read projections return copies so callers can never bypass the invariants.
//
// The collaborator calls (manifest and availability ingestion) run outside the
// lock under a per-call-type in-flight flag, and plan commits are fenced by a
// generation counter so a stale response is never committed over newer state.
type Dispatcher struct {
	mu      sync.Mutex
	plan    *domain.RoutePlan
	members []domain.TeamMember
	fleets  []domain.Fleet

	optimizer ports.RouteOptimizer
	parser    ports.AvailabilityParser
	repo      ports.StructureRepository

	manifestInFlight bool
	rosterInFlight   bool
	planGeneration   uint64
}

// NewDispatcher wires the dispatcher with its collaborators. repo may be nil,
// in which case the structure is memory-only and lost on restart.
func NewDispatcher(
	optimizer ports.RouteOptimizer,
	parser ports.AvailabilityParser,
	repo ports.StructureRepository,
) (*Dispatcher, error) {
	d := &Dispatcher{
		optimizer: optimizer,
		parser:    parser,
		repo:      repo,
	}

	if repo != nil {
		members, fleets, err := repo.LoadStructure()
		if err != nil {
			return nil, fmt.Errorf("new dispatcher: load structure: %w", err)
		}
		d.members = members
		d.fleets = fleets
	}

	return d, nil
}

// IngestManifest forwards raw manifest text to the optimization collaborator
// and atomically replaces the active plan on success. A fresh plan always
// starts with every stop unassigned; fleet records are untouched. On failure
// the previous plan (or its absence) is left as-is.
func (d *Dispatcher) IngestManifest(ctx context.Context, manifest string) (*domain.RoutePlan, error) {
	d.mu.Lock()
	if d.manifestInFlight {
		d.mu.Unlock()
		return nil, domain.ErrIngestionInFlight
	}
	d.manifestInFlight = true
	gen := d.planGeneration
	d.mu.Unlock()

	plan, err := d.optimizer.OptimizeManifest(ctx, manifest)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.manifestInFlight = false

	if err != nil {
		return nil, fmt.Errorf("ingest manifest: %w", err)
	}

	// A reset issued while the call was outstanding supersedes this result.
	if gen != d.planGeneration {
		return nil, domain.ErrStaleIngestion
	}

	for i := range plan.Stops {
		plan.Stops[i].AssignedFleetID = ""
	}
	d.plan = plan
	d.planGeneration++

	return d.planCopyLocked(), nil
}

// ResetPlan clears the active plan. Any in-flight manifest ingestion started
// before the reset will be discarded when it resolves.
func (d *Dispatcher) ResetPlan() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.plan = nil
	d.planGeneration++
}

// ActivePlan returns a copy of the current plan, or ErrNoActivePlan.
func (d *Dispatcher) ActivePlan() (*domain.RoutePlan, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.plan == nil {
		return nil, domain.ErrNoActivePlan
	}
	return d.planCopyLocked(), nil
}

// MoveStop sets a stop's fleet reference to targetFleetID, or clears it when
// targetFleetID is empty. OrderIndex and every other stop are left untouched;
// moving a stop to its current fleet is a no-op in effect.
func (d *Dispatcher) MoveStop(stopID, targetFleetID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.plan == nil {
		return domain.ErrNoActivePlan
	}
	if targetFleetID != "" && d.fleetIndexLocked(targetFleetID) < 0 {
		return domain.ErrFleetNotFound
	}

	for i := range d.plan.Stops {
		if d.plan.Stops[i].ID == stopID {
			d.plan.Stops[i].AssignedFleetID = targetFleetID
			return nil
		}
	}

	return domain.ErrStopNotFound
}

func (d *Dispatcher) planCopyLocked() *domain.RoutePlan {
	cp := *d.plan
	cp.Stops = make([]domain.DeliveryStop, len(d.plan.Stops))
	copy(cp.Stops, d.plan.Stops)
	return &cp
}

// persistLocked snapshots the structure through the repository, if configured.
// A failed snapshot does not roll back the in-memory mutation; the structure
// is authoritative in memory and the snapshot is best effort.
func (d *Dispatcher) persistLocked() {
	if d.repo == nil {
		return
	}

	members := make([]domain.TeamMember, len(d.members))
	copy(members, d.members)

	fleets := make([]domain.Fleet, len(d.fleets))
	for i, f := range d.fleets {
		ids := make([]string, len(f.MemberIDs))
		copy(ids, f.MemberIDs)
		f.MemberIDs = ids
		fleets[i] = f
	}

	if err := d.repo.SaveStructure(members, fleets); err != nil {
		log.Printf("structure snapshot failed: %v", err)
	}
}
