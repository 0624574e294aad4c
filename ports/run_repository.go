package ports

import (
	"context"

	"emvenn/domain/core"
	"emvenn/domain/run"
)

// RunRepository persists completed simulation run summaries. Raw per-trial
// draws are never stored, only the frozen tallies and parameters.
type RunRepository interface {
	// Create stores a completed run
	Create(ctx context.Context, result *run.Result) error

	// GetByID retrieves a run by its ID
	GetByID(ctx context.Context, id core.RunID) (*run.Result, error)

	// List retrieves recent runs, newest first
	List(ctx context.Context, limit, offset int) ([]*run.Result, error)
}
