package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pricing-engine/internal/ports"
)

// Postgres-backed implementation of the SolveAuditLog port: one row per
// Solve call, for offline inspection of column-generation behavior.
type PostgresSolveLog struct{ DB *sql.DB }

func NewPostgresSolveLog(db *sql.DB) *PostgresSolveLog {
	return &PostgresSolveLog{DB: db}
}

func (l *PostgresSolveLog) Record(ctx context.Context, entry ports.SolveAuditEntry) error {
	if l.DB == nil {
		return errors.New("postgres solve log: DB is nil")
	}

	query := `
	INSERT INTO solve_audit (instance_id, num_columns, best_reduced_cost)
	VALUES ($1, $2, $3);
	`
	if _, err := l.DB.ExecContext(ctx, query, entry.InstanceID, entry.NumColumns, entry.BestReducedCost); err != nil {
		return fmt.Errorf("record solve audit entry: exec insert: %w", err)
	}

	return nil
}

// InitPostgresSchema creates the production schema. Mirrors
// repositories.InitSchema's statement-list shape, with Postgres DDL
// dialect (SERIAL instead of AUTOINCREMENT, NOW() instead of
// CURRENT_TIMESTAMP).
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
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
		id SERIAL PRIMARY KEY,
		instance_id TEXT NOT NULL,
		num_columns INTEGER NOT NULL,
		best_reduced_cost DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
