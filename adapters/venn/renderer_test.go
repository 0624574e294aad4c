package venn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emvenn/domain/core"
	"emvenn/domain/run"
	"emvenn/domain/sampling"
	"emvenn/internal/errors"
)

func fixtureResult() *run.Result {
	result := &run.Result{
		RunID: core.RunID("test-run"),
		Params: run.Parameters{
			Interval:   sampling.Interval{Lower: 0, Upper: 1},
			TrialCount: 1000,
			Workers:    1,
		},
	}
	result.Tallies[0] = 1000
	result.Tallies[32] = 1000 // "a"
	result.Tallies[50] = 250  // "abf"
	result.Tallies[63] = 125  // "abcdef"
	return result
}

const template = `<svg xmlns="http://www.w3.org/2000/svg">
<text x="10" y="20.5">abf</text>
<text x="12" y="33.25">abcdef</text>
<text x="14" y="44.75">a</text>
<rect x="1" y="2" width="3" height="4"/>
</svg>`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "6waydiagram.svg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderSubstitutesProbabilities(t *testing.T) {
	path := writeTemplate(t, template)

	var out strings.Builder
	if err := NewRenderer(path).Render(fixtureResult(), &out); err != nil {
		t.Fatal(err)
	}

	rendered := out.String()
	for _, want := range []string{
		`y="20.5">0.25</text>`,
		`y="33.25">0.125</text>`,
		`y="44.75">1</text>`,
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered output missing %q:\n%s", want, rendered)
		}
	}

	// Non-label lines pass through unchanged
	if !strings.Contains(rendered, `<rect x="1" y="2" width="3" height="4"/>`) {
		t.Error("non-label line was modified")
	}
	if strings.Contains(rendered, ">abf<") {
		t.Error("letter code survived substitution")
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	err := NewRenderer(filepath.Join(t.TempDir(), "absent.svg")).Render(fixtureResult(), &strings.Builder{})
	if err == nil {
		t.Fatal("expected an error for a missing template")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %q (%v)", errors.GetCode(err), err)
	}
}

func TestRenderIntegerYCoordinateIgnored(t *testing.T) {
	// The template marks labels with fractional y coordinates only
	path := writeTemplate(t, `<text x="1" y="20">abf</text>`)

	var out strings.Builder
	if err := NewRenderer(path).Render(fixtureResult(), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), ">abf<") {
		t.Error("line without fractional y coordinate should pass through")
	}
}
