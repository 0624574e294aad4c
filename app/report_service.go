package app

import (
	"fmt"
	"strings"

	"emvenn/domain/agreement"
	"emvenn/domain/run"
)

// ReportService renders a completed run as a markdown document for the UI
// report endpoint and the CLI.
type ReportService struct{}

// NewReportService creates a report service
func NewReportService() *ReportService {
	return &ReportService{}
}

// singleMeasureCodes pairs each diagram letter with its measure name, in
// canonical measure order.
var singleMeasureCodes = []struct {
	Code string
	Name string
}{
	{"a", "relative risk"},
	{"b", "complement relative risk"},
	{"c", "odds ratio"},
	{"d", "risk difference"},
	{"e", "hazard ratio"},
	{"f", "complement hazard ratio"},
}

// Markdown builds a report of the run's parameters, summary statistics and
// the per-subset agreement probabilities.
func (s *ReportService) Markdown(result *run.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Effect-Measure Agreement Run %s\n\n", result.RunID)

	b.WriteString("## Parameters\n\n")
	fmt.Fprintf(&b, "- Interval: [%g, %g]\n", result.Params.Interval.Lower, result.Params.Interval.Upper)
	fmt.Fprintf(&b, "- Trials: %d\n", result.Params.TrialCount)
	fmt.Fprintf(&b, "- Tent mode: %t\n", result.Params.TentMode)
	fmt.Fprintf(&b, "- Workers: %d\n", result.Params.Workers)
	fmt.Fprintf(&b, "- Bisection resolution: %d\n", result.Params.BisectionResolution())
	fmt.Fprintf(&b, "- Seed: %d\n", result.Params.Seed)
	fmt.Fprintf(&b, "- Runtime: %dms\n\n", result.RuntimeMs)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Mean subset probability: %.6f\n", result.Summary.MeanProbability)
	fmt.Fprintf(&b, "- Median subset probability: %.6f\n", result.Summary.MedianProbability)
	fmt.Fprintf(&b, "- Min subset probability: %.6f\n", result.Summary.MinProbability)
	fmt.Fprintf(&b, "- Max subset probability: %.6f\n", result.Summary.MaxProbability)
	fmt.Fprintf(&b, "- All six measures agree: %.6f\n\n", result.Summary.FullAgreement)

	b.WriteString("## Single measures\n\n")
	b.WriteString("| Code | Measure | P(agreement) |\n")
	b.WriteString("|------|---------|--------------|\n")
	for _, m := range singleMeasureCodes {
		p, _ := result.Probability(m.Code)
		fmt.Fprintf(&b, "| %s | %s | %.6f |\n", m.Code, m.Name, p)
	}
	b.WriteString("\n")

	b.WriteString("## All subsets\n\n")
	b.WriteString("| Mask | Code | Agreements | P(agreement) |\n")
	b.WriteString("|------|------|------------|--------------|\n")
	probs := result.Probabilities()
	for mask := 0; mask < agreement.SubsetCount; mask++ {
		code := agreement.MaskCode(mask)
		if code == "" {
			code = "(empty)"
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %.6f |\n", mask, code, result.Tallies[mask], probs[mask])
	}

	return b.String()
}
