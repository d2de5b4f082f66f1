package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to a Postgres structure-snapshot database through the pgx
// stdlib driver. The pool stays small; only the dbtool and infrequent
// snapshot writes touch it.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
