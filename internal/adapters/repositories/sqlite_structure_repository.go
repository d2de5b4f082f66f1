package repositories

import (
	"database/sql"
	"errors"
	"fleet-dispatch-service/internal/domain"
	"fmt"
)

// SQLite-backed implementation of the StructureRepository port. The snapshot
// is rewritten wholesale on every save; the collections are a few dozen
// records at most, so a full rewrite inside one transaction stays cheap and
// keeps the stored state exactly equal to the in-memory state.
type SqliteStructureRepository struct{ DB *sql.DB }

func NewSqliteStructureRepository(db *sql.DB) *SqliteStructureRepository {
	return &SqliteStructureRepository{DB: db}
}

// Load the persisted roster and fleet structure in stored order.
func (s *SqliteStructureRepository) LoadStructure() ([]domain.TeamMember, []domain.Fleet, error) {
	if s.DB == nil {
		return nil, nil, errors.New("structure repository: DB is nil")
	}

	members, err := s.loadMembers()
	if err != nil {
		return nil, nil, fmt.Errorf("load structure: %w", err)
	}

	fleets, err := s.loadFleets()
	if err != nil {
		return nil, nil, fmt.Errorf("load structure: %w", err)
	}

	return members, fleets, nil
}

func (s *SqliteStructureRepository) loadMembers() ([]domain.TeamMember, error) {
	query := `
	SELECT
		member_id,
		name,
		role,
		specific_type,
		active,
		status_reason
	FROM team_members
	ORDER BY position;
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query team_members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.TeamMember, 0, 32)
	for rows.Next() {
		var m domain.TeamMember
		var role string
		var active int
		if err := rows.Scan(&m.ID, &m.Name, &role, &m.SpecificType, &active, &m.StatusReason); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		m.Role = domain.Role(role)
		m.Active = active != 0
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("member row iteration: %w", err)
	}

	return members, nil
}

func (s *SqliteStructureRepository) loadFleets() ([]domain.Fleet, error) {
	query := `
	SELECT
		fleet_id,
		fleet_number
	FROM fleets
	ORDER BY position;
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query fleets: %w", err)
	}
	defer rows.Close()

	fleets := make([]domain.Fleet, 0, 8)
	for rows.Next() {
		var f domain.Fleet
		if err := rows.Scan(&f.ID, &f.Number); err != nil {
			return nil, fmt.Errorf("scan fleet row: %w", err)
		}
		f.MemberIDs = []string{}
		fleets = append(fleets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fleet row iteration: %w", err)
	}

	crewQuery := `
	SELECT
		fleet_id,
		member_id
	FROM fleet_members
	ORDER BY fleet_id, position;
	`
	crewRows, err := s.DB.Query(crewQuery)
	if err != nil {
		return nil, fmt.Errorf("query fleet_members: %w", err)
	}
	defer crewRows.Close()

	byFleet := make(map[string][]string)
	for crewRows.Next() {
		var fleetID, memberID string
		if err := crewRows.Scan(&fleetID, &memberID); err != nil {
			return nil, fmt.Errorf("scan crew row: %w", err)
		}
		byFleet[fleetID] = append(byFleet[fleetID], memberID)
	}
	if err := crewRows.Err(); err != nil {
		return nil, fmt.Errorf("crew row iteration: %w", err)
	}

	for i := range fleets {
		if ids, ok := byFleet[fleets[i].ID]; ok {
			fleets[i].MemberIDs = ids
		}
	}

	return fleets, nil
}

// Replace the persisted structure atomically with the given state.
func (s *SqliteStructureRepository) SaveStructure(members []domain.TeamMember, fleets []domain.Fleet) error {
	if s.DB == nil {
		return errors.New("structure repository: DB is nil")
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("save structure: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"fleet_members", "fleets", "team_members"} {
		if _, err := tx.Exec("DELETE FROM " + table + ";"); err != nil {
			return fmt.Errorf("save structure: clear %s: %w", table, err)
		}
	}

	memberStmt, err := tx.Prepare(`
	INSERT INTO team_members (member_id, name, role, specific_type, active, status_reason, position)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save structure: prepare member insert: %w", err)
	}
	defer memberStmt.Close()

	for i, m := range members {
		active := 0
		if m.Active {
			active = 1
		}
		if _, err := memberStmt.Exec(m.ID, m.Name, string(m.Role), m.SpecificType, active, m.StatusReason, i); err != nil {
			return fmt.Errorf("save structure: insert member %q: %w", m.ID, err)
		}
	}

	fleetStmt, err := tx.Prepare(`
	INSERT INTO fleets (fleet_id, fleet_number, position)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save structure: prepare fleet insert: %w", err)
	}
	defer fleetStmt.Close()

	crewStmt, err := tx.Prepare(`
	INSERT INTO fleet_members (fleet_id, member_id, position)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save structure: prepare crew insert: %w", err)
	}
	defer crewStmt.Close()

	for i, f := range fleets {
		if _, err := fleetStmt.Exec(f.ID, f.Number, i); err != nil {
			return fmt.Errorf("save structure: insert fleet %q: %w", f.ID, err)
		}
		for j, memberID := range f.MemberIDs {
			if _, err := crewStmt.Exec(f.ID, memberID, j); err != nil {
				return fmt.Errorf("save structure: insert crew %q/%q: %w", f.ID, memberID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save structure: commit tx: %w", err)
	}

	return nil
}
