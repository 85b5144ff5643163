package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pricing-engine/internal/domain"
)

// SQLite-backed implementation of the InstanceRepository port. Instances
// are stored as their JSON encoding: ProblemData's matrices make a
// normalized relational schema more trouble than it is worth for what
// is, in practice, a write-once blob fetched whole on every solve.
type SqliteInstanceRepository struct{ DB *sql.DB }

func NewSqliteInstanceRepository(db *sql.DB) *SqliteInstanceRepository {
	return &SqliteInstanceRepository{DB: db}
}

func (r *SqliteInstanceRepository) Get(ctx context.Context, id string) (domain.ProblemData, error) {
	if r.DB == nil {
		return domain.ProblemData{}, errors.New("sqlite instance repository: DB is nil")
	}

	var payload string
	row := r.DB.QueryRowContext(ctx, `SELECT payload FROM instances WHERE id = ?`, id)
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

func (r *SqliteInstanceRepository) Save(ctx context.Context, id string, data domain.ProblemData) error {
	if r.DB == nil {
		return errors.New("sqlite instance repository: DB is nil")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("save instance %q: encode payload: %w", id, err)
	}

	query := `
	INSERT INTO instances (id, payload)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET payload = excluded.payload;
	`
	if _, err := r.DB.ExecContext(ctx, query, id, string(payload)); err != nil {
		return fmt.Errorf("save instance %q: exec upsert: %w", id, err)
	}

	return nil
}
