package agreement

import (
	"fmt"

	"emvenn/domain/core"
)

// letterBits maps the diagram's region letters to subset bit weights. Letters
// follow the canonical measure order (a=RR, b=RR*, c=OR, d=RD, e=HR, f=HR*).
var letterBits = map[rune]int{
	'a': 32,
	'b': 16,
	'c': 1,
	'd': 4,
	'e': 8,
	'f': 2,
}

// CodeMask converts a letter code such as "abf" to its subset bitmask.
// Repeated letters count once; the empty code maps to the empty subset.
func CodeMask(code string) (int, error) {
	seen := map[rune]bool{}
	mask := 0
	for _, r := range code {
		bit, ok := letterBits[r]
		if !ok {
			return 0, fmt.Errorf("%w: %q contains %q", core.ErrInvalidCode, code, r)
		}
		if !seen[r] {
			mask += bit
			seen[r] = true
		}
	}
	return mask, nil
}

// MaskCode is the inverse of CodeMask, emitting letters in a..f order.
func MaskCode(mask int) string {
	var code []rune
	for _, r := range []rune{'a', 'b', 'c', 'd', 'e', 'f'} {
		if mask&letterBits[r] != 0 {
			code = append(code, r)
		}
	}
	return string(code)
}

// Probability estimates the chance that the subset named by code agrees,
// as the tally count over the trial count. The empty code always yields 1.
func Probability(t Tally, trialCount int, code string) (float64, error) {
	mask, err := CodeMask(code)
	if err != nil {
		return 0, err
	}
	return float64(t[mask]) / float64(trialCount), nil
}
