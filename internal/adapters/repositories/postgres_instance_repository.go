package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"pricing-engine/internal/domain"
)

// Postgres-backed implementation of the InstanceRepository port, used
// in production in place of SqliteInstanceRepository. Same JSON-blob
// storage strategy; only the placeholder dialect and driver differ at
// the call site, via database/sql and the pgx stdlib driver.
type PostgresInstanceRepository struct{ DB *sql.DB }

func NewPostgresInstanceRepository(db *sql.DB) *PostgresInstanceRepository {
	return &PostgresInstanceRepository{DB: db}
}

func (r *PostgresInstanceRepository) Get(ctx context.Context, id string) (domain.ProblemData, error) {
	if r.DB == nil {
		return domain.ProblemData{}, errors.New("postgres instance repository: DB is nil")
	}

	var payload string
	row := r.DB.QueryRowContext(ctx, `SELECT payload FROM instances WHERE id = $1`, id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProblemData{}, fmt.Errorf("get instance %q: not found", id)
		}
		return domain.ProblemData{}, fmt.Errorf("get instance %q: query row: %w", id, err)
	}

	var data domain.ProblemData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return domain.ProblemData{}, fmt.Errorf("get instance %q: decode payload: %w", id, err)
	}

	return data, nil
}

func (r *PostgresInstanceRepository) Save(ctx context.Context, id string, data domain.ProblemData) error {
	if r.DB == nil {
		return errors.New("postgres instance repository: DB is nil")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("save instance %q: encode payload: %w", id, err)
	}

	query := `
	INSERT INTO instances (id, payload)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET payload = excluded.payload;
	`
	if _, err := r.DB.ExecContext(ctx, query, id, string(payload)); err != nil {
		return fmt.Errorf("save instance %q: exec upsert: %w", id, err)
	}

	return nil
}

// SeedInstancesPostgres loads InstanceSeed entries from jsonPath and
// upserts them, using Postgres placeholder syntax. Mirrors
// repositories.SeedFromJSON's shape for the sqlite driver.
func SeedInstancesPostgres(db *sql.DB, jsonPath string) error {
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
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET payload = excluded.payload;
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
