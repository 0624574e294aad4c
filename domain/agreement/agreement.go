package agreement

import (
	"emvenn/domain/measure"
)

// SubsetCount is the number of effect-measure subsets (2^6).
const SubsetCount = 1 << measure.MeasureCount

// measureBits assigns each canonical measure its bit weight in a subset
// bitmask. The weights are dictated by the published 6-way diagram's letter
// regions (a=32, b=16, c=1, d=4, e=8, f=2) and are deliberately
// non-sequential; do not renumber them.
var measureBits = [measure.MeasureCount]int{32, 16, 1, 4, 8, 2}

// Directions reports, per effect measure, whether the second stratum's value
// is strictly greater than the first's. Ties count as neither direction, and
// comparisons against NaN are false.
func Directions(s1, s2 measure.Stratum) [measure.MeasureCount]bool {
	v1, v2 := s1.Vector(), s2.Vector()
	var d [measure.MeasureCount]bool
	for i := range d {
		d[i] = v2[i] > v1[i]
	}
	return d
}

// Vector evaluates every subset of effect measures: entry b is true when the
// measures selected by bitmask b all point the same direction between the two
// strata. The empty subset and all singletons are vacuously true.
func Vector(s1, s2 measure.Stratum) [SubsetCount]bool {
	d := Directions(s1, s2)
	var out [SubsetCount]bool
	for mask := 0; mask < SubsetCount; mask++ {
		var sawStronger, sawNotStronger bool
		for i, bit := range measureBits {
			if mask&bit == 0 {
				continue
			}
			if d[i] {
				sawStronger = true
			} else {
				sawNotStronger = true
			}
		}
		out[mask] = !(sawStronger && sawNotStronger)
	}
	return out
}

// Tally counts, per subset bitmask, how many trials agreed.
type Tally [SubsetCount]uint64

// Add folds one trial's agreement vector into the tally.
func (t *Tally) Add(v [SubsetCount]bool) {
	for mask, agreed := range v {
		if agreed {
			t[mask]++
		}
	}
}

// Merge adds another tally into this one. Accumulation is commutative, so
// per-worker partial tallies can be merged in any order.
func (t *Tally) Merge(other Tally) {
	for mask := range t {
		t[mask] += other[mask]
	}
}
