package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"pricing-engine/internal/domain"
)

// Initialize the local SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`

	createSolveAuditQuery := `
	CREATE TABLE IF NOT EXISTS solve_audit (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		instance_id TEXT NOT NULL,
		num_columns INTEGER NOT NULL,
		best_reduced_cost REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solve_audit_instance_id
	ON solve_audit(instance_id);
	`

	statements := []string{
		createInstancesQuery,
		createSolveAuditQuery,
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

// InstanceSeed pairs an id with the ProblemData a seed file wants
// loaded under it.
type InstanceSeed struct {
	ID   string             `json:"id"`
	Data domain.ProblemData `json:"data"`
}

// Populate the database with instance data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed instances: read %q: %w", jsonPath, err)
	}

	var seeds []InstanceSeed
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return fmt.Errorf("seed instances: parse json: %w", err)
	}

	for i, s := range seeds {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("seed instances: item at index %d: id cannot be empty", i)
		}
		if _, err := domain.NewProblemData(s.Data); err != nil {
			return fmt.Errorf("seed instances: item %q: %w", id, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed instances: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO instances (id, payload)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET payload = excluded.payload;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed instances: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range seeds {
		payload, err := json.Marshal(s.Data)
		if err != nil {
			return fmt.Errorf("seed instances: encode %q: %w", s.ID, err)
		}
		if _, err := stmt.Exec(strings.TrimSpace(s.ID), string(payload)); err != nil {
			return fmt.Errorf("seed instances: insert id=%q: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed instances: commit tx: %w", err)
	}

	return nil
}
