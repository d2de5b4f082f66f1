package services

import (
	"context"
	"fleet-dispatch-service/internal/domain"
	"fleet-dispatch-service/internal/ports"
	"testing"
)

// stubOptimizer returns a canned plan, standing in for the external
// collaborator.
type stubOptimizer struct {
	plan *domain.RoutePlan
	err  error
}

func (s *stubOptimizer) OptimizeManifest(ctx context.Context, manifest string) (*domain.RoutePlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.plan
	cp.Stops = make([]domain.DeliveryStop, len(s.plan.Stops))
	copy(cp.Stops, s.plan.Stops)
	return &cp, nil
}

type stubParser struct {
	absences []ports.Absence
	err      error
}

func (s *stubParser) ParseAvailability(ctx context.Context, schedule string) ([]ports.Absence, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.absences, nil
}

func twoStopPlan() *domain.RoutePlan {
	return &domain.RoutePlan{
		Stops: []domain.DeliveryStop{
			{ID: "1", CustomerName: "Padaria do João", OrderIndex: 0, EstimatedLat: -23.56, EstimatedLng: -46.65},
			{ID: "2", CustomerName: "Mercado da Esquina", OrderIndex: 1, EstimatedLat: -23.55, EstimatedLng: -46.64},
		},
		TotalDistanceKm:  7,
		TotalTimeMinutes: 24,
		Summary:          "two stops",
	}
}

func newTestDispatcher(t *testing.T, plan *domain.RoutePlan) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(&stubOptimizer{plan: plan}, &stubParser{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func ingest(t *testing.T, d *Dispatcher) {
	t.Helper()
	if _, err := d.IngestManifest(context.Background(), "manifest"); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
}

func TestMoveStopRoundTrip(t *testing.T) {
	d := newTestDispatcher(t, twoStopPlan())
	ingest(t, d)

	fleet, err := d.CreateFleet("113")
	if err != nil {
		t.Fatalf("create fleet: %v", err)
	}

	before, _ := d.ActivePlan()

	if err := d.MoveStop("1", fleet.ID); err != nil {
		t.Fatalf("move to fleet: %v", err)
	}
	if err := d.MoveStop("1", ""); err != nil {
		t.Fatalf("move to unassigned: %v", err)
	}

	after, _ := d.ActivePlan()
	for i, s := range after.Stops {
		if s != before.Stops[i] {
			t.Errorf("stop %q changed by round trip: got %+v, want %+v", s.ID, s, before.Stops[i])
		}
	}
}

func TestMoveStopPreservesOrderIndexAndOtherStops(t *testing.T) {
	d := newTestDispatcher(t, twoStopPlan())
	ingest(t, d)

	fleet, _ := d.CreateFleet("113")
	if err := d.MoveStop("2", fleet.ID); err != nil {
		t.Fatalf("move: %v", err)
	}

	plan, _ := d.ActivePlan()
	if plan.Stops[1].OrderIndex != 1 {
		t.Errorf("orderIndex mutated: got %d, want 1", plan.Stops[1].OrderIndex)
	}
	if plan.Stops[0].AssignedFleetID != "" {
		t.Errorf("unrelated stop gained assignment %q", plan.Stops[0].AssignedFleetID)
	}
}

func TestMoveStopValidation(t *testing.T) {
	d := newTestDispatcher(t, twoStopPlan())

	if err := d.MoveStop("1", ""); err != domain.ErrNoActivePlan {
		t.Fatalf("expected ErrNoActivePlan, got %v", err)
	}

	ingest(t, d)
	if err := d.MoveStop("missing", ""); err != domain.ErrStopNotFound {
		t.Fatalf("expected ErrStopNotFound, got %v", err)
	}
	if err := d.MoveStop("1", "no-such-fleet"); err != domain.ErrFleetNotFound {
		t.Fatalf("expected ErrFleetNotFound, got %v", err)
	}
}

func TestFleetStopsSortedByOrderIndex(t *testing.T) {
	plan := &domain.RoutePlan{
		Stops: []domain.DeliveryStop{
			{ID: "a", OrderIndex: 2},
			{ID: "b", OrderIndex: 0},
			{ID: "c", OrderIndex: 1},
		},
	}
	d := newTestDispatcher(t, plan)
	ingest(t, d)

	fleet, _ := d.CreateFleet("101")

	// Move in an order unrelated to the route sequence.
	for _, id := range []string{"a", "c", "b"} {
		if err := d.MoveStop(id, fleet.ID); err != nil {
			t.Fatalf("move %q: %v", id, err)
		}
	}

	stops, err := d.FleetStops(fleet.ID)
	if err != nil {
		t.Fatalf("fleet stops: %v", err)
	}

	want := []string{"b", "c", "a"}
	for i, s := range stops {
		if s.ID != want[i] {
			t.Errorf("position %d = %q, want %q", i, s.ID, want[i])
		}
	}
}

func TestCreateFleetRejectsDuplicateNumber(t *testing.T) {
	d := newTestDispatcher(t, nil)

	if _, err := d.CreateFleet("113"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := d.CreateFleet("113"); err != domain.ErrDuplicateFleetNumber {
		t.Fatalf("expected ErrDuplicateFleetNumber, got %v", err)
	}
	if _, err := d.CreateFleet("  "); err == nil {
		t.Fatal("expected rejection of blank number")
	}
	if _, err := d.CreateFleet("173"); err != nil {
		t.Fatalf("distinct number should succeed: %v", err)
	}
}

func TestGlobalCrewExclusivity(t *testing.T) {
	d := newTestDispatcher(t, nil)

	m, err := d.RegisterMember("João Silva", domain.RoleDriver, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	f1, _ := d.CreateFleet("101")
	f2, _ := d.CreateFleet("102")

	if err := d.AddMemberToFleet(f1.ID, m.ID); err != nil {
		t.Fatalf("first assignment: %v", err)
	}

	// Rejected everywhere, including the fleet already holding the member.
	if err := d.AddMemberToFleet(f2.ID, m.ID); err != domain.ErrMemberAlreadyAssigned {
		t.Fatalf("expected ErrMemberAlreadyAssigned, got %v", err)
	}
	if err := d.AddMemberToFleet(f1.ID, m.ID); err != domain.ErrMemberAlreadyAssigned {
		t.Fatalf("expected ErrMemberAlreadyAssigned on same fleet, got %v", err)
	}

	assertNoDuplicateCrew(t, d)

	crew, _ := d.Crew(f1.ID)
	if len(crew) != 1 || crew[0].ID != m.ID {
		t.Fatalf("member should remain only in fleet 101, crew = %+v", crew)
	}
	if crew2, _ := d.Crew(f2.ID); len(crew2) != 0 {
		t.Fatalf("fleet 102 crew should be empty, got %+v", crew2)
	}
}

func TestRemoveMemberFromFleetFreesMember(t *testing.T) {
	d := newTestDispatcher(t, nil)
	m, _ := d.RegisterMember("Maria Oliveira", domain.RoleHelper, "")
	f1, _ := d.CreateFleet("101")
	f2, _ := d.CreateFleet("102")

	if err := d.AddMemberToFleet(f1.ID, m.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.RemoveMemberFromFleet(f1.ID, m.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Removing again is a no-op.
	if err := d.RemoveMemberFromFleet(f1.ID, m.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}

	if err := d.AddMemberToFleet(f2.ID, m.ID); err != nil {
		t.Fatalf("member should be reassignable: %v", err)
	}
	assertNoDuplicateCrew(t, d)
}

func TestRemoveMemberCascadesOutOfFleets(t *testing.T) {
	d := newTestDispatcher(t, nil)
	m, _ := d.RegisterMember("Pedro Santos", domain.RoleOperator, "")
	f, _ := d.CreateFleet("101")
	_ = d.AddMemberToFleet(f.ID, m.ID)

	if err := d.RemoveMember(m.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	crew, _ := d.Crew(f.ID)
	if len(crew) != 0 {
		t.Fatalf("crew should be empty after cascade, got %+v", crew)
	}
	if len(d.Members()) != 0 {
		t.Fatal("roster should be empty")
	}
}

func TestRemoveFleetUnassignsItsStops(t *testing.T) {
	d := newTestDispatcher(t, twoStopPlan())
	ingest(t, d)

	fleet, _ := d.CreateFleet("113")
	_ = d.MoveStop("1", fleet.ID)
	_ = d.MoveStop("2", fleet.ID)

	if err := d.RemoveFleet(fleet.ID); err != nil {
		t.Fatalf("remove fleet: %v", err)
	}

	unassigned := d.UnassignedStops()
	if len(unassigned) != 2 {
		t.Fatalf("expected both stops back in unassigned, got %d", len(unassigned))
	}
	plan, _ := d.ActivePlan()
	for _, s := range plan.Stops {
		if s.AssignedFleetID != "" {
			t.Errorf("stop %q still references deleted fleet %q", s.ID, s.AssignedFleetID)
		}
	}
}

func TestToggleMemberStatus(t *testing.T) {
	d := newTestDispatcher(t, nil)
	m, _ := d.RegisterMember("Ana Lima", domain.RoleDriver, "Bulk Driver")

	toggled, err := d.ToggleMemberStatus(m.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Active || toggled.StatusReason != "Manual" {
		t.Fatalf("expected inactive with reason Manual, got %+v", toggled)
	}

	toggled, _ = d.ToggleMemberStatus(m.ID)
	if !toggled.Active || toggled.StatusReason != "" {
		t.Fatalf("expected active with cleared reason, got %+v", toggled)
	}
}

func TestChangeMemberRoleResetsSpecificType(t *testing.T) {
	d := newTestDispatcher(t, nil)
	m, _ := d.RegisterMember("Carlos Souza", domain.RoleDriver, "Bulk Driver")

	changed, err := d.ChangeMemberRole(m.ID, domain.RoleHelper)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if changed.Role != domain.RoleHelper || changed.SpecificType != "Distribution Helper" {
		t.Fatalf("specific type not reset: %+v", changed)
	}

	if _, err := d.ChangeMemberRole(m.ID, domain.Role("Pilot")); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterMemberValidation(t *testing.T) {
	d := newTestDispatcher(t, nil)

	if _, err := d.RegisterMember("X", domain.Role("Pilot"), ""); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := d.RegisterMember("X", domain.RoleHelper, "Bulk Driver"); err != domain.ErrInvalidSpecificType {
		t.Fatalf("expected ErrInvalidSpecificType, got %v", err)
	}

	m, err := d.RegisterMember("X", domain.RoleOperator, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if m.SpecificType != "Bulk Operator" {
		t.Fatalf("default specific type = %q, want %q", m.SpecificType, "Bulk Operator")
	}
	if !m.Active {
		t.Fatal("new members start active")
	}
}

func TestAvailableMembersExcludesAssignedAndInactive(t *testing.T) {
	d := newTestDispatcher(t, nil)
	m1, _ := d.RegisterMember("A", domain.RoleDriver, "")
	m2, _ := d.RegisterMember("B", domain.RoleDriver, "")
	m3, _ := d.RegisterMember("C", domain.RoleHelper, "")

	f, _ := d.CreateFleet("101")
	_ = d.AddMemberToFleet(f.ID, m1.ID)
	_, _ = d.ToggleMemberStatus(m3.ID)

	all := d.AvailableMembers(false)
	if len(all) != 2 {
		t.Fatalf("available (any) = %d, want 2", len(all))
	}

	active := d.AvailableMembers(true)
	if len(active) != 1 || active[0].ID != m2.ID {
		t.Fatalf("available (active) = %+v, want only %q", active, m2.ID)
	}
}

// assertNoDuplicateCrew checks the global exclusivity invariant across every
// fleet's crew.
func assertNoDuplicateCrew(t *testing.T, d *Dispatcher) {
	t.Helper()
	seen := make(map[string]string)
	for _, f := range d.Fleets() {
		for _, id := range f.MemberIDs {
			if other, ok := seen[id]; ok {
				t.Fatalf("member %q appears in fleets %q and %q", id, other, f.ID)
			}
			seen[id] = f.ID
		}
	}
}
