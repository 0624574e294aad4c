package run

import (
	"testing"

	"emvenn/domain/core"
	"emvenn/domain/sampling"
)

func TestDefaultParametersMatchPublishedAnalysis(t *testing.T) {
	p := DefaultParameters()
	if p.TrialCount != 1_000_000 {
		t.Errorf("default trial count = %d", p.TrialCount)
	}
	if p.Interval.Lower != 0 || p.Interval.Upper != 1 {
		t.Errorf("default interval = %+v", p.Interval)
	}
	if !p.TentMode {
		t.Error("default should use tent sampling")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestBisectionResolutionReusesTrialCount(t *testing.T) {
	p := DefaultParameters()
	if r := p.BisectionResolution(); r != p.TrialCount {
		t.Errorf("unset resolution should reuse trial count, got %d", r)
	}

	p.Resolution = 500
	if r := p.BisectionResolution(); r != 500 {
		t.Errorf("explicit resolution ignored, got %d", r)
	}
}

func TestValidateRejectsBadParameters(t *testing.T) {
	p := DefaultParameters()
	p.TrialCount = 0
	if err := p.Validate(); !core.IsParameterError(err) {
		t.Errorf("expected parameter error for zero trials, got %v", err)
	}

	p = DefaultParameters()
	p.Interval = sampling.Interval{Lower: 0.5, Upper: 0.5}
	if err := p.Validate(); !core.IsParameterError(err) {
		t.Errorf("expected parameter error for empty interval, got %v", err)
	}
}

func TestResultProbability(t *testing.T) {
	r := &Result{Params: Parameters{TrialCount: 2000}}
	r.Tallies[0] = 2000
	r.Tallies[63] = 500

	p, err := r.Probability("abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if p != 0.25 {
		t.Errorf("probability = %v, want 0.25", p)
	}

	p, err = r.Probability("")
	if err != nil {
		t.Fatal(err)
	}
	if p != 1.0 {
		t.Errorf("empty-code probability = %v, want 1.0", p)
	}
}
