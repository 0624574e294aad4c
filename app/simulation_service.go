package app

import (
	"context"
	"math/rand"
	"time"

	"emvenn/domain/agreement"
	"emvenn/domain/core"
	"emvenn/domain/measure"
	"emvenn/domain/run"
	"emvenn/domain/sampling"
	"emvenn/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
)

// SimulationService runs Monte Carlo trials estimating how often subsets of
// the six effect measures agree in direction between two sampled strata.
type SimulationService struct {
	rngPort ports.RNGPort
	runs    ports.RunRepository // optional; nil disables persistence
}

// RunRequest defines the inputs for a deterministic simulation run
type RunRequest struct {
	Params run.Parameters
	RunID  core.RunID // optional, will be generated if empty
}

// NewSimulationService creates a simulation service
func NewSimulationService(rngPort ports.RNGPort, runs ports.RunRepository) *SimulationService {
	return &SimulationService{rngPort: rngPort, runs: runs}
}

// Run executes the configured trial count and returns the frozen tallies.
// Trials never fail: degenerate risks produce Inf/NaN measure values whose
// direction comparisons simply vote false.
func (s *SimulationService) Run(ctx context.Context, req RunRequest) (*run.Result, error) {
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}

	params := req.Params
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		params.Seed = seed
	}

	// Trials are independent, so workers accumulate private tallies that are
	// merged additively once all of them have finished.
	workers := params.Workers
	partials := make([]agreement.Tally, workers)
	sem := semaphore.NewWeighted(int64(workers))

	perWorker := params.TrialCount / workers
	remainder := params.TrialCount % workers

	var workerErr error
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		rng, err := s.rngPort.WorkerStream(ctx, runID.String(), w, seed)
		if err != nil {
			sem.Release(1)
			workerErr = err
			break
		}
		go func(w, trials int, rng *rand.Rand) {
			defer sem.Release(1)
			partials[w] = simulate(params, trials, rng)
		}(w, trials, rng)
	}

	// Wait for all workers to drain
	if err := sem.Acquire(ctx, int64(workers)); err != nil {
		return nil, err
	}
	if workerErr != nil {
		return nil, workerErr
	}

	var tally agreement.Tally
	for _, partial := range partials {
		tally.Merge(partial)
	}

	result := &run.Result{
		RunID:     runID,
		Params:    params,
		Tallies:   tally,
		RuntimeMs: time.Since(startTime).Milliseconds(),
		CreatedAt: core.Now(),
	}
	result.Summary = summarize(result)

	if s.runs != nil {
		if err := s.runs.Create(ctx, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// simulate runs one worker's share of trials into a private tally.
func simulate(params run.Parameters, trials int, rng *rand.Rand) agreement.Tally {
	iv := params.Interval
	tent := sampling.TentSampler{
		Interval:   iv,
		Resolution: params.BisectionResolution(),
	}

	var tally agreement.Tally
	for i := 0; i < trials; i++ {
		var s1, s2 measure.Stratum
		if params.TentMode {
			p1 := iv.UniformRisk(rng)
			p2 := tent.Risk(p1, rng)
			p3 := iv.UniformRisk(rng)
			p4 := tent.Risk(p3, rng)
			s1, s2 = measure.New(p1, p2), measure.New(p3, p4)
		} else {
			s1 = measure.New(iv.UniformRisk(rng), iv.UniformRisk(rng))
			s2 = measure.New(iv.UniformRisk(rng), iv.UniformRisk(rng))
		}
		tally.Add(agreement.Vector(s1, s2))
	}
	return tally
}

// summarize condenses the 64 subset probabilities into headline statistics.
func summarize(result *run.Result) run.Summary {
	probs := result.Probabilities()
	data := probs[:]

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	full, _ := agreement.Probability(result.Tallies, result.Params.TrialCount, "abcdef")

	return run.Summary{
		MeanProbability:   mean,
		MedianProbability: median,
		MinProbability:    min,
		MaxProbability:    max,
		FullAgreement:     full,
	}
}
