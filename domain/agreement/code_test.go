package agreement

import (
	"errors"
	"testing"

	"emvenn/domain/core"
)

func TestCodeMaskLetterWeights(t *testing.T) {
	// The weights come from the published diagram and are non-sequential
	cases := map[string]int{
		"a":      32,
		"b":      16,
		"c":      1,
		"d":      4,
		"e":      8,
		"f":      2,
		"":       0,
		"abcdef": 63,
		"fedcba": 63,
		"abf":    50,
		"aa":     32,
		"ce":     9,
	}
	for code, want := range cases {
		mask, err := CodeMask(code)
		if err != nil {
			t.Errorf("CodeMask(%q) failed: %v", code, err)
			continue
		}
		if mask != want {
			t.Errorf("CodeMask(%q) = %d, want %d", code, mask, want)
		}
	}
}

func TestCodeMaskRejectsUnknownLetters(t *testing.T) {
	for _, code := range []string{"g", "abz", "A", "a f"} {
		if _, err := CodeMask(code); !errors.Is(err, core.ErrInvalidCode) {
			t.Errorf("CodeMask(%q): expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestMaskCodeRoundTrip(t *testing.T) {
	for mask := 0; mask < SubsetCount; mask++ {
		back, err := CodeMask(MaskCode(mask))
		if err != nil {
			t.Fatalf("mask %d: %v", mask, err)
		}
		if back != mask {
			t.Errorf("mask %d round-tripped to %d via %q", mask, back, MaskCode(mask))
		}
	}
}

func TestProbabilityEmptyCodeIsOne(t *testing.T) {
	var tally Tally
	tally[0] = 1000

	p, err := Probability(tally, 1000, "")
	if err != nil {
		t.Fatal(err)
	}
	if p != 1.0 {
		t.Errorf("empty code probability = %v, want 1.0", p)
	}
}

func TestProbabilityScalesByTrialCount(t *testing.T) {
	var tally Tally
	tally[50] = 250

	p, err := Probability(tally, 1000, "abf")
	if err != nil {
		t.Fatal(err)
	}
	if p != 0.25 {
		t.Errorf("probability = %v, want 0.25", p)
	}
}
