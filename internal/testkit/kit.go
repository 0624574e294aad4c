package testkit

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"emvenn/domain/core"
	"emvenn/domain/run"
	"emvenn/ports"
)

// TestKit provides testing fixtures and in-memory adapters
type TestKit struct {
	runs *InMemoryRunRepository
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{runs: NewInMemoryRunRepository()}
}

// RunRepository returns the shared in-memory run repository
func (t *TestKit) RunRepository() ports.RunRepository {
	return t.runs
}

// RNGAdapter returns a deterministic RNG port for tests
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return &RNGAdapter{}
}

// RNGAdapter implements the RNGPort interface for testing. Worker streams
// are derived from the base seed and worker index only, ignoring the run ID,
// so fixtures don't need stable IDs to be reproducible.
type RNGAdapter struct{}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}

// WorkerStream creates a deterministic RNG stream for one simulation worker
func (r *RNGAdapter) WorkerStream(ctx context.Context, runID string, worker int, baseSeed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(baseSeed + int64(worker))), nil
}

// InMemoryRunRepository implements RunRepository backed by a map
type InMemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]*run.Result
}

// NewInMemoryRunRepository creates an empty in-memory repository
func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{runs: make(map[core.RunID]*run.Result)}
}

// Create stores a completed run
func (r *InMemoryRunRepository) Create(ctx context.Context, result *run.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *result
	r.runs[result.RunID] = &copied
	return nil
}

// GetByID retrieves a run by its ID
func (r *InMemoryRunRepository) GetByID(ctx context.Context, id core.RunID) (*run.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.runs[id]
	if !ok {
		return nil, core.NewNotFoundError("run", id.String())
	}
	copied := *result
	return &copied, nil
}

// List retrieves stored runs, newest first
func (r *InMemoryRunRepository) List(ctx context.Context, limit, offset int) ([]*run.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*run.Result, 0, len(r.runs))
	for _, result := range r.runs {
		copied := *result
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[j].CreatedAt.Before(all[i].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
