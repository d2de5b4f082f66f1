package repositories

import (
	"database/sql"
	"fleet-dispatch-service/internal/domain"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestStructureRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteStructureRepository(db)

	members := []domain.TeamMember{
		{ID: "m1", Name: "João Silva", Role: domain.RoleDriver, SpecificType: "Driver I", Active: true},
		{ID: "m2", Name: "Maria Oliveira", Role: domain.RoleHelper, SpecificType: "Distribution Helper", Active: false, StatusReason: "Folga"},
	}
	fleets := []domain.Fleet{
		{ID: "f1", Number: "113", MemberIDs: []string{"m2", "m1"}},
		{ID: "f2", Number: "173", MemberIDs: []string{}},
	}

	if err := repo.SaveStructure(members, fleets); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotMembers, gotFleets, err := repo.LoadStructure()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(gotMembers) != 2 {
		t.Fatalf("members = %d, want 2", len(gotMembers))
	}
	for i, m := range gotMembers {
		if m != members[i] {
			t.Errorf("member %d = %+v, want %+v", i, m, members[i])
		}
	}

	if len(gotFleets) != 2 {
		t.Fatalf("fleets = %d, want 2", len(gotFleets))
	}
	if gotFleets[0].Number != "113" || gotFleets[1].Number != "173" {
		t.Errorf("fleet order not preserved: %+v", gotFleets)
	}

	// Crew add order must survive the round trip.
	crew := gotFleets[0].MemberIDs
	if len(crew) != 2 || crew[0] != "m2" || crew[1] != "m1" {
		t.Errorf("crew order = %v, want [m2 m1]", crew)
	}
	if len(gotFleets[1].MemberIDs) != 0 {
		t.Errorf("empty crew should load empty, got %v", gotFleets[1].MemberIDs)
	}
}

func TestSaveStructureReplacesPreviousSnapshot(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteStructureRepository(db)

	first := []domain.TeamMember{{ID: "m1", Name: "A", Role: domain.RoleDriver, SpecificType: "Driver", Active: true}}
	if err := repo.SaveStructure(first, nil); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := []domain.TeamMember{{ID: "m2", Name: "B", Role: domain.RoleOperator, SpecificType: "Bulk Operator", Active: true}}
	if err := repo.SaveStructure(second, nil); err != nil {
		t.Fatalf("save second: %v", err)
	}

	members, fleets, err := repo.LoadStructure()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(members) != 1 || members[0].ID != "m2" {
		t.Fatalf("snapshot not replaced: %+v", members)
	}
	if len(fleets) != 0 {
		t.Fatalf("expected no fleets, got %+v", fleets)
	}
}

func TestLoadEmptyStructure(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteStructureRepository(db)

	members, fleets, err := repo.LoadStructure()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(members) != 0 || len(fleets) != 0 {
		t.Fatalf("fresh snapshot should be empty: %d members, %d fleets", len(members), len(fleets))
	}
}
