package measure

import (
	"math"
)

// MeasureCount is the fixed number of effect measures computed per stratum.
const MeasureCount = 6

// Stratum represents a population subgroup, some of which receive a given
// treatment and some of which do not. Risks are conventionally in [0,1] but
// no bound is enforced: out-of-range inputs yield Inf/NaN measure values,
// which downstream comparisons treat as false in both directions.
type Stratum struct {
	ControlRisk   float64 `json:"control_risk"`
	TreatmentRisk float64 `json:"treatment_risk"`
}

// New creates a stratum from a control-group risk and a treatment-group risk.
func New(controlRisk, treatmentRisk float64) Stratum {
	return Stratum{ControlRisk: controlRisk, TreatmentRisk: treatmentRisk}
}

// RelativeRisk is the treatment risk over the control risk.
func (s Stratum) RelativeRisk() float64 {
	return s.TreatmentRisk / s.ControlRisk
}

// ComplementRelativeRisk is the relative risk of the complementary outcome,
// (1-pc)/(1-pt), sometimes written RR*.
func (s Stratum) ComplementRelativeRisk() float64 {
	return (1 - s.ControlRisk) / (1 - s.TreatmentRisk)
}

// OddsRatio equals RelativeRisk * ComplementRelativeRisk by construction.
func (s Stratum) OddsRatio() float64 {
	return s.RelativeRisk() * s.ComplementRelativeRisk()
}

// RiskDifference is the treatment risk minus the control risk.
func (s Stratum) RiskDifference() float64 {
	return s.TreatmentRisk - s.ControlRisk
}

// HazardRatio is ln(1-pt)/ln(1-pc), the hazard ratio under constant hazards.
func (s Stratum) HazardRatio() float64 {
	return math.Log(1-s.TreatmentRisk) / math.Log(1-s.ControlRisk)
}

// ComplementHazardRatio is ln(pc)/ln(pt), the hazard-ratio dual HR*.
func (s Stratum) ComplementHazardRatio() float64 {
	return math.Log(s.ControlRisk) / math.Log(s.TreatmentRisk)
}

// Vector holds the six effect measures in canonical order:
// RR, RR*, OR, RD, HR, HR*. Bit positions in the agreement bitmask and the
// diagram letter codes are keyed to this order, so it must not change.
type Vector [MeasureCount]float64

// Measure pairs a measure name with its pure evaluation function.
type Measure struct {
	Name string
	Eval func(Stratum) float64
}

// Measures enumerates the effect measures in canonical order.
var Measures = [MeasureCount]Measure{
	{Name: "relative_risk", Eval: Stratum.RelativeRisk},
	{Name: "complement_relative_risk", Eval: Stratum.ComplementRelativeRisk},
	{Name: "odds_ratio", Eval: Stratum.OddsRatio},
	{Name: "risk_difference", Eval: Stratum.RiskDifference},
	{Name: "hazard_ratio", Eval: Stratum.HazardRatio},
	{Name: "complement_hazard_ratio", Eval: Stratum.ComplementHazardRatio},
}

// Vector evaluates all six effect measures for the stratum.
func (s Stratum) Vector() Vector {
	var v Vector
	for i, m := range Measures {
		v[i] = m.Eval(s)
	}
	return v
}
