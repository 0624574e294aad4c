package rng

import (
	"context"
	"math/rand"

	"emvenn/ports"
)

// Adapter implements the RNGPort interface over math/rand
type Adapter struct{}

// NewAdapter creates an RNG adapter
func NewAdapter() ports.RNGPort {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name != "" {
		seed += int64(hashString(name))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// WorkerStream creates a deterministic RNG stream for one simulation worker.
// The seed is derived by hashing the run ID and offsetting per worker, so
// identical run/worker/seed inputs reproduce identical trial sequences.
func (a *Adapter) WorkerStream(ctx context.Context, runID string, worker int, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if runID != "" {
		seed += int64(hashString(runID))
	}
	seed += int64(worker)
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
