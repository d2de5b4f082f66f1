package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fleet-dispatch-service/internal/domain"
	"fmt"
	"os"
	"strings"
)

// Initialize the structure snapshot schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMembersQuery := `
	CREATE TABLE IF NOT EXISTS team_members (
		member_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		specific_type TEXT NOT NULL,
		active INTEGER NOT NULL,
		status_reason TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);
	`

	createFleetsQuery := `
	CREATE TABLE IF NOT EXISTS fleets (
		fleet_id TEXT PRIMARY KEY,
		fleet_number TEXT NOT NULL UNIQUE,
		position INTEGER NOT NULL
	);
	`

	createFleetMembersQuery := `
	CREATE TABLE IF NOT EXISTS fleet_members (
		fleet_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (fleet_id, member_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fleet_members_member
	ON fleet_members(member_id);
	`

	statements := []string{
		createMembersQuery,
		createFleetsQuery,
		createFleetMembersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type MemberSeed struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	SpecificType string `json:"specific_type"`
}

// Populate the roster from a JSON seed file. Existing members are kept; the
// seed only fills an empty snapshot, so restarts never duplicate people.
func SeedRosterFromJSON(db *sql.DB, jsonPath string, newID func() string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed roster: read %q: %w", jsonPath, err)
	}

	var data []MemberSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed roster: parse json: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM team_members;`).Scan(&count); err != nil {
		return fmt.Errorf("seed roster: count members: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed roster: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO team_members (
		member_id,
		name,
		role,
		specific_type,
		active,
		status_reason,
		position
	)
	VALUES (?, ?, ?, ?, 1, '', ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed roster: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range data {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return fmt.Errorf("seed roster: item at index %d: name cannot be empty", i+1)
		}

		role := domain.Role(m.Role)
		if !domain.ValidRole(role) {
			return fmt.Errorf("seed roster: item %q: unknown role %q", name, m.Role)
		}

		specificType := strings.TrimSpace(m.SpecificType)
		if specificType == "" {
			specificType = domain.DefaultSpecificType(role)
		} else if !domain.AllowedSpecificType(role, specificType) {
			return fmt.Errorf("seed roster: item %q: type %q not permitted for role %q", name, specificType, role)
		}

		if _, err := stmt.Exec(newID(), name, string(role), specificType, i); err != nil {
			return fmt.Errorf("seed roster: insert %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed roster: commit tx: %w", err)
	}

	return nil
}
