package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"emvenn/domain/core"
	"emvenn/domain/run"
	"emvenn/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Schema creates the simulation_runs table if it does not exist
func Schema(db *sqlx.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		params JSONB NOT NULL,
		tallies JSONB NOT NULL,
		summary JSONB NOT NULL,
		runtime_ms BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create simulation_runs table: %w", err)
	}
	return nil
}

// Create inserts a completed run into the database
func (r *runRepository) Create(ctx context.Context, result *run.Result) error {
	paramsJSON, err := json.Marshal(result.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	talliesJSON, err := json.Marshal(result.Tallies)
	if err != nil {
		return fmt.Errorf("failed to marshal tallies: %w", err)
	}
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `INSERT INTO simulation_runs (
		id, params, tallies, summary, runtime_ms, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		result.RunID.String(), paramsJSON, talliesJSON, summaryJSON,
		result.RuntimeMs, result.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.Result, error) {
	query := `SELECT id, params, tallies, summary, runtime_ms, created_at
	FROM simulation_runs WHERE id = $1`

	result, err := r.scanRow(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("run", id.String())
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return result, nil
}

// List retrieves recent runs, newest first
func (r *runRepository) List(ctx context.Context, limit, offset int) ([]*run.Result, error) {
	query := `SELECT id, params, tallies, summary, runtime_ms, created_at
	FROM simulation_runs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []*run.Result
	for rows.Next() {
		result, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// rowScanner abstracts *sqlx.Row and *sqlx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *runRepository) scanRow(row rowScanner) (*run.Result, error) {
	var (
		id          string
		paramsJSON  []byte
		talliesJSON []byte
		summaryJSON []byte
		result      run.Result
		createdAt   sql.NullTime
	)

	err := row.Scan(&id, &paramsJSON, &talliesJSON, &summaryJSON, &result.RuntimeMs, &createdAt)
	if err != nil {
		return nil, err
	}

	result.RunID = core.RunID(id)
	if createdAt.Valid {
		result.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	if err := json.Unmarshal(paramsJSON, &result.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	if err := json.Unmarshal(talliesJSON, &result.Tallies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tallies: %w", err)
	}
	if err := json.Unmarshal(summaryJSON, &result.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &result, nil
}
