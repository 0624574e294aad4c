package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// WorkerStream creates a deterministic RNG stream for one simulation worker.
	// The same run/worker/seed combination always yields the same stream, so
	// a run is reproducible for a fixed worker count.
	WorkerStream(ctx context.Context, runID string, worker int, baseSeed int64) (*rand.Rand, error)
}
