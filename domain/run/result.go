package run

import (
	"emvenn/domain/agreement"
	"emvenn/domain/core"
	"emvenn/domain/sampling"
)

// Parameters defines one simulation run. TentMode selects the conditional
// "tent" sampler for each stratum's treatment risk; otherwise all four risks
// are drawn independently and uniformly.
type Parameters struct {
	Interval   sampling.Interval `json:"interval"`
	TrialCount int               `json:"trial_count"`
	TentMode   bool              `json:"tent_mode"`
	Workers    int               `json:"workers"`
	// Resolution bounds the tent sampler's bisection error. Zero means
	// "reuse TrialCount", matching the original analysis, which conflated
	// the two under a single PRECISION constant.
	Resolution int   `json:"resolution"`
	Seed       int64 `json:"seed"`
}

// DefaultParameters mirrors the published analysis: one million trials over
// [0,1] with tent sampling, single worker.
func DefaultParameters() Parameters {
	return Parameters{
		Interval:   sampling.Interval{Lower: 0, Upper: 1},
		TrialCount: 1_000_000,
		TentMode:   true,
		Workers:    1,
	}
}

// Validate rejects parameters the simulation cannot run with.
func (p Parameters) Validate() error {
	if p.TrialCount <= 0 {
		return core.NewParameterError("trial_count", "must be positive")
	}
	if p.Interval.Upper <= p.Interval.Lower {
		return core.NewParameterError("interval", "upper bound must exceed lower bound")
	}
	if p.Workers <= 0 {
		return core.NewParameterError("workers", "must be positive")
	}
	if p.Resolution < 0 {
		return core.NewParameterError("resolution", "must be non-negative")
	}
	return nil
}

// BisectionResolution resolves the effective tent-sampler resolution.
func (p Parameters) BisectionResolution() int {
	if p.Resolution > 0 {
		return p.Resolution
	}
	return p.TrialCount
}

// Summary aggregates the 64 estimated agreement probabilities of a run.
type Summary struct {
	MeanProbability   float64 `json:"mean_probability"`
	MedianProbability float64 `json:"median_probability"`
	MinProbability    float64 `json:"min_probability"`
	MaxProbability    float64 `json:"max_probability"`
	FullAgreement     float64 `json:"full_agreement"`
}

// Result is the frozen outcome of a completed run. Tallies are written only
// by the simulation driver and read-only afterwards.
type Result struct {
	RunID     core.RunID      `json:"run_id"`
	Params    Parameters      `json:"params"`
	Tallies   agreement.Tally `json:"tallies"`
	Summary   Summary         `json:"summary"`
	RuntimeMs int64           `json:"runtime_ms"`
	CreatedAt core.Timestamp  `json:"created_at"`
}

// Probability estimates the agreement probability for a letter code.
func (r *Result) Probability(code string) (float64, error) {
	return agreement.Probability(r.Tallies, r.Params.TrialCount, code)
}

// Probabilities returns all 64 subset probabilities indexed by bitmask.
func (r *Result) Probabilities() [agreement.SubsetCount]float64 {
	var probs [agreement.SubsetCount]float64
	n := float64(r.Params.TrialCount)
	for mask, count := range r.Tallies {
		probs[mask] = float64(count) / n
	}
	return probs
}
