package app

import (
	"context"
	"testing"

	"emvenn/adapters/rng"
	"emvenn/domain/core"
	"emvenn/domain/run"
	"emvenn/domain/sampling"
	"emvenn/internal/testkit"
)

func testParams() run.Parameters {
	return run.Parameters{
		Interval:   sampling.Interval{Lower: 0, Upper: 1},
		TrialCount: 20_000,
		TentMode:   false,
		Workers:    1,
		Seed:       12345,
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	// Same seed, same run ID, same worker count: identical tallies
	svc := NewSimulationService(rng.NewAdapter(), nil)
	req := RunRequest{Params: testParams(), RunID: core.RunID("fixed-run")}

	first, err := svc.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if first.Tallies != second.Tallies {
		t.Error("identical seeds produced different tallies")
	}
}

func TestVacuousSubsetsCountEveryTrial(t *testing.T) {
	svc := NewSimulationService(testkit.NewTestKit().RNGAdapter(), nil)
	result, err := svc.Run(context.Background(), RunRequest{Params: testParams()})
	if err != nil {
		t.Fatal(err)
	}

	n := uint64(result.Params.TrialCount)
	if result.Tallies[0] != n {
		t.Errorf("empty subset tallied %d of %d trials", result.Tallies[0], n)
	}
	for _, mask := range []int{1, 2, 4, 8, 16, 32} {
		if result.Tallies[mask] != n {
			t.Errorf("singleton subset %d tallied %d of %d trials", mask, result.Tallies[mask], n)
		}
	}
}

func TestProbabilityMonotoneInSubsetSize(t *testing.T) {
	svc := NewSimulationService(testkit.NewTestKit().RNGAdapter(), nil)
	result, err := svc.Run(context.Background(), RunRequest{Params: testParams()})
	if err != nil {
		t.Fatal(err)
	}

	// Adding letters can only make agreement rarer
	chains := [][]string{
		{"", "a", "ab", "abf", "abdf", "abdef", "abcdef"},
		{"c", "ce", "cde"},
	}
	for _, chain := range chains {
		prev := 2.0
		for _, code := range chain {
			p, err := result.Probability(code)
			if err != nil {
				t.Fatal(err)
			}
			if p > prev {
				t.Errorf("probability(%q)=%v exceeds its subset's %v", code, p, prev)
			}
			prev = p
		}
	}
}

func TestWorkerPartitionCoversAllTrials(t *testing.T) {
	params := testParams()
	params.TrialCount = 10_001
	params.Workers = 3

	svc := NewSimulationService(testkit.NewTestKit().RNGAdapter(), nil)
	result, err := svc.Run(context.Background(), RunRequest{Params: params})
	if err != nil {
		t.Fatal(err)
	}

	if result.Tallies[0] != uint64(params.TrialCount) {
		t.Errorf("workers tallied %d trials, want %d", result.Tallies[0], params.TrialCount)
	}
}

func TestTentModeRun(t *testing.T) {
	params := testParams()
	params.TentMode = true
	params.TrialCount = 2_000
	params.Resolution = 100_000

	svc := NewSimulationService(testkit.NewTestKit().RNGAdapter(), nil)
	result, err := svc.Run(context.Background(), RunRequest{Params: params})
	if err != nil {
		t.Fatal(err)
	}
	if result.Tallies[0] != uint64(params.TrialCount) {
		t.Errorf("tent run tallied %d trials, want %d", result.Tallies[0], params.TrialCount)
	}
	if result.Summary.FullAgreement > result.Summary.MaxProbability {
		t.Error("summary inconsistent: full agreement above max probability")
	}
}

func TestInvalidParameters(t *testing.T) {
	svc := NewSimulationService(testkit.NewTestKit().RNGAdapter(), nil)

	cases := map[string]func(*run.Parameters){
		"zero trials":     func(p *run.Parameters) { p.TrialCount = 0 },
		"negative trials": func(p *run.Parameters) { p.TrialCount = -5 },
		"inverted bounds": func(p *run.Parameters) { p.Interval = sampling.Interval{Lower: 1, Upper: 0} },
		"equal bounds":    func(p *run.Parameters) { p.Interval = sampling.Interval{Lower: 0.5, Upper: 0.5} },
		"zero workers":    func(p *run.Parameters) { p.Workers = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			params := testParams()
			mutate(&params)
			_, err := svc.Run(context.Background(), RunRequest{Params: params})
			if !core.IsParameterError(err) {
				t.Errorf("expected parameter error, got %v", err)
			}
		})
	}
}

func TestRunPersistsResult(t *testing.T) {
	kit := testkit.NewTestKit()
	svc := NewSimulationService(kit.RNGAdapter(), kit.RunRepository())

	params := testParams()
	params.TrialCount = 1_000
	result, err := svc.Run(context.Background(), RunRequest{Params: params})
	if err != nil {
		t.Fatal(err)
	}

	stored, err := kit.RunRepository().GetByID(context.Background(), result.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Tallies != result.Tallies {
		t.Error("stored tallies differ from returned tallies")
	}
}
