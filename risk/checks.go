package risk

import "fmt"

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Decision is the outcome of checking available capital against every
// threshold of a Regime.
type Decision struct {
	Adequate   bool        `json:"adequate"`
	Violations []Violation `json:"violations,omitempty"`

	Available   float64            `json:"available"`
	Ratio       float64            `json:"ratio"`
	RatioKnown  bool               `json:"ratio_known"`
	Requirement CapitalRequirement `json:"requirement"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Adequate = false
}

// Evaluate checks available capital against the tier 1, total and buffered
// requirements for rwa. Each shortfall is reported separately.
func (r Regime) Evaluate(available, rwa float64) Decision {
	d := Decision{Adequate: true, Available: available}

	if !finite(available) || available < 0 {
		d.add("BAD_CAPITAL", fmt.Sprintf("available capital %v is not a non-negative amount", available))
		return d
	}
	if !finite(rwa) || rwa < 0 {
		d.add("BAD_RWA", fmt.Sprintf("rwa %v is not a non-negative amount", rwa))
		return d
	}

	d.Requirement = r.Requirements(rwa)
	d.Ratio, d.RatioKnown = CapitalRatio(available, rwa)

	if !CapitalAdequacy(available, d.Requirement.Tier1Capital) {
		d.add("TIER1_SHORTFALL",
			fmt.Sprintf("capital %.2f below tier 1 minimum %.2f (%.2f%% of RWA)",
				available, d.Requirement.Tier1Capital, 100*r.Tier1Ratio))
	}
	if !CapitalAdequacy(available, d.Requirement.TotalCapital) {
		d.add("TOTAL_SHORTFALL",
			fmt.Sprintf("capital %.2f below total minimum %.2f (%.2f%% of RWA)",
				available, d.Requirement.TotalCapital, 100*r.TotalRatio))
	}
	if !CapitalAdequacy(available, d.Requirement.CapitalWithBuffer) {
		d.add("BUFFER_SHORTFALL",
			fmt.Sprintf("capital %.2f below buffered minimum %.2f (%.2f%% of RWA)",
				available, d.Requirement.CapitalWithBuffer, 100*r.BufferedRatio()))
	}

	return d
}
