package risk

import "fmt"

// Regime holds the minimum capital ratios applied to RWA.
type Regime struct {
	Tier1Ratio         float64 `json:"tier1_ratio" yaml:"tier1_ratio"`                 // 0.06
	TotalRatio         float64 `json:"total_ratio" yaml:"total_ratio"`                 // 0.08
	ConservationBuffer float64 `json:"conservation_buffer" yaml:"conservation_buffer"` // 0.025
}

// DefaultRegime returns the Basel III minimums.
func DefaultRegime() Regime {
	return Regime{
		Tier1Ratio:         0.06,
		TotalRatio:         0.08,
		ConservationBuffer: 0.025,
	}
}

// CapitalRequirement is the minimum capital for a given RWA.
type CapitalRequirement struct {
	RWA               float64 `json:"rwa"`
	Tier1Capital      float64 `json:"tier1_capital"`
	TotalCapital      float64 `json:"total_capital"`
	CapitalWithBuffer float64 `json:"capital_with_buffer"`
}

// Requirements computes tier 1, total and buffered capital for rwa.
func (r Regime) Requirements(rwa float64) CapitalRequirement {
	return CapitalRequirement{
		RWA:               rwa,
		Tier1Capital:      rwa * r.Tier1Ratio,
		TotalCapital:      rwa * r.TotalRatio,
		CapitalWithBuffer: rwa * (r.TotalRatio + r.ConservationBuffer),
	}
}

// BufferedRatio is the total ratio plus the conservation buffer.
func (r Regime) BufferedRatio() float64 {
	return r.TotalRatio + r.ConservationBuffer
}

func (r Regime) Validate() error {
	if !finite(r.Tier1Ratio) || r.Tier1Ratio < 0 || r.Tier1Ratio > 1 {
		return fmt.Errorf("regime.tier1_ratio must be between 0 and 1")
	}
	if !finite(r.TotalRatio) || r.TotalRatio < 0 || r.TotalRatio > 1 {
		return fmt.Errorf("regime.total_ratio must be between 0 and 1")
	}
	if r.Tier1Ratio > r.TotalRatio {
		return fmt.Errorf("regime.tier1_ratio must not exceed regime.total_ratio")
	}
	if !finite(r.ConservationBuffer) || r.ConservationBuffer < 0 {
		return fmt.Errorf("regime.conservation_buffer must be non-negative")
	}
	return nil
}

// CapitalAdequacy reports whether available capital covers required.
func CapitalAdequacy(available, required float64) bool {
	return available >= required
}

// CapitalRatio is capital / rwa. The second result is false when rwa is 0.
func CapitalRatio(capital, rwa float64) (float64, bool) {
	if rwa == 0 {
		return 0, false
	}
	return capital / rwa, true
}
