package sampling

import (
	"math/rand"
)

// Interval bounds the risks produced by the samplers.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the interval length.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// UniformRisk draws a risk uniformly from the interval.
func (iv Interval) UniformRisk(rng *rand.Rand) float64 {
	return iv.Lower + iv.Width()*rng.Float64()
}

// TentSampler draws a second risk from a "tent" distribution conditioned on a
// first risk: the conditional CDF is piecewise quadratic, peaking at the
// conditioning risk. Samples are produced by inverting the CDF with a
// halving-step bisection; the terminal step, and hence the absolute error of
// a sample, is bounded by 1/Resolution.
type TentSampler struct {
	Interval   Interval
	Resolution int
}

// CDF evaluates the conditional tent CDF at r given the conditioning risk.
// The two quadratic branches meet continuously at r = prior, and the function
// rises from 0 at the lower bound to 1 at the upper bound.
func (t TentSampler) CDF(r, prior float64) float64 {
	lo, hi := t.Interval.Lower, t.Interval.Upper
	if r <= prior {
		c := r*r - 2*lo*r + lo*lo
		c /= prior - lo
		c /= hi - lo
		return c
	}
	c := (hi - r) * (hi - r)
	c /= hi - prior
	c /= hi - lo
	return 1 - c
}

// Risk draws one tent-distributed risk conditioned on prior.
func (t TentSampler) Risk(prior float64, rng *rand.Rand) float64 {
	return t.Invert(prior, rng.Float64())
}

// Invert approximates the inverse CDF at u by bisection: start at the
// interval midpoint with step width/4 and halve until the step drops below
// 1/Resolution.
func (t TentSampler) Invert(prior, u float64) float64 {
	width := t.Interval.Width()
	risk := t.Interval.Lower + width/2
	for step := width / 4; step > 1.0/float64(t.Resolution); step /= 2 {
		cdf := t.CDF(risk, prior)
		if cdf == u {
			return risk
		}
		if cdf > u {
			risk -= step
		} else {
			risk += step
		}
	}
	return risk
}
