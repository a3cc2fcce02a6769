package risk

import (
	"fmt"
	"math"
	"sort"
)

// Scenario names understood by the default ScenarioSet.
const (
	Normal   = "normal"
	Mild     = "mild"
	Moderate = "moderate"
	Severe   = "severe"
)

// ScenarioSet maps a scenario name to its PD multiplier.
type ScenarioSet map[string]float64

func DefaultScenarios() ScenarioSet {
	return ScenarioSet{
		Normal:   1.0,
		Mild:     1.5, // 50% more defaults
		Moderate: 2.0,
		Severe:   3.0,
	}
}

// Multiplier returns the PD multiplier for name. Unknown names get 1.0 and
// ok=false; they are treated as the normal scenario, not as an error.
func (s ScenarioSet) Multiplier(name string) (m float64, ok bool) {
	m, ok = s[name]
	if !ok {
		return 1.0, false
	}
	return m, true
}

// ApplyStress multiplies every PD by the scenario's multiplier and caps the
// result at 1.0. There is no floor.
func (s ScenarioSet) ApplyStress(pds []float64, name string) []float64 {
	m, _ := s.Multiplier(name)
	return stress(pds, m)
}

func stress(pds []float64, m float64) []float64 {
	out := make([]float64, len(pds))
	for i, pd := range pds {
		out[i] = math.Min(pd*m, 1.0)
	}
	return out
}

// Names returns the scenario names ordered by increasing severity.
func (s ScenarioSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if s[names[i]] != s[names[j]] {
			return s[names[i]] < s[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Validate enforces the stress-only reading of a scenario: a multiplier
// below 1.0 would lower PD and is rejected.
func (s ScenarioSet) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("scenarios: at least one scenario is required")
	}
	for name, m := range s {
		if name == "" {
			return fmt.Errorf("scenarios: empty scenario name")
		}
		if !finite(m) || m < 1.0 {
			return fmt.Errorf("scenarios: %s multiplier %v must be >= 1.0", name, m)
		}
	}
	return nil
}

// Metrics is the aggregate set compared between a normal and a stressed run.
type Metrics struct {
	Exposure float64 `json:"exposure"`
	CapitalRequirement
}

// StressComparison is one row of the normal-vs-stressed table. ChangePct is
// NaN and Defined false when the normal value is zero.
type StressComparison struct {
	Metric    string  `json:"metric"`
	Normal    float64 `json:"normal"`
	Stressed  float64 `json:"stressed"`
	ChangePct Ratio   `json:"change_pct"`
}

// SummarizeStress lines up normal and stressed aggregates with the percent
// change (stressed - normal) / normal * 100 for each.
func SummarizeStress(normal, stressed Metrics) []StressComparison {
	rows := []struct {
		name string
		n, s float64
	}{
		{"Total Exposure", normal.Exposure, stressed.Exposure},
		{"RWA", normal.RWA, stressed.RWA},
		{"Tier 1 Capital", normal.Tier1Capital, stressed.Tier1Capital},
		{"Total Capital", normal.TotalCapital, stressed.TotalCapital},
		{"With Buffer", normal.CapitalWithBuffer, stressed.CapitalWithBuffer},
	}

	out := make([]StressComparison, len(rows))
	for i, r := range rows {
		out[i] = StressComparison{
			Metric:    r.name,
			Normal:    r.n,
			Stressed:  r.s,
			ChangePct: percent(r.s-r.n, r.n),
		}
	}
	return out
}
