package risk

import "fmt"

// Tiers maps a PD to a regulatory risk weight. Bounds are inclusive upper
// limits checked in order; a PD above every bound gets the last weight, so
// len(Weights) must be len(Bounds)+1.
type Tiers struct {
	Bounds  []float64 `json:"bounds" yaml:"bounds"`
	Weights []float64 `json:"weights" yaml:"weights"`
}

// DefaultTiers is the simplified Basel III table:
//
//	PD <= 0.05 -> 0.50
//	PD <= 0.10 -> 0.75
//	PD <= 0.30 -> 1.00
//	otherwise  -> 1.50
func DefaultTiers() Tiers {
	return Tiers{
		Bounds:  []float64{0.05, 0.10, 0.30},
		Weights: []float64{0.5, 0.75, 1.0, 1.5},
	}
}

// Weight classifies a single PD. It does not range-check the PD.
func (t Tiers) Weight(pd float64) float64 {
	for i, b := range t.Bounds {
		if pd <= b {
			return t.Weights[i]
		}
	}
	return t.Weights[len(t.Weights)-1]
}

// Weights classifies a whole PD vector in one pass.
func (t Tiers) Weights(pds []float64) []float64 {
	out := make([]float64, len(pds))
	for i, pd := range pds {
		out[i] = t.Weight(pd)
	}
	return out
}

func (t Tiers) Validate() error {
	if len(t.Weights) != len(t.Bounds)+1 {
		return fmt.Errorf("risk weights: need %d weights for %d bounds, got %d",
			len(t.Bounds)+1, len(t.Bounds), len(t.Weights))
	}
	for i, b := range t.Bounds {
		if !finite(b) {
			return fmt.Errorf("risk weights: bound %d is not finite", i)
		}
		if i > 0 && b <= t.Bounds[i-1] {
			return fmt.Errorf("risk weights: bounds must be strictly increasing (%v after %v)", b, t.Bounds[i-1])
		}
	}
	for i, w := range t.Weights {
		if !finite(w) || w < 0 {
			return fmt.Errorf("risk weights: weight %d must be a non-negative number", i)
		}
	}
	return nil
}
