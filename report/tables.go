package report

import (
	"fmt"
	"io"
	"math"

	"github.com/rustyeddy/creditrisk/journal"
	"github.com/rustyeddy/creditrisk/risk"
)

func pctOf(num, den float64) risk.Ratio {
	if den == 0 {
		return risk.Ratio{Value: math.NaN()}
	}
	return risk.Ratio{Value: num / den * 100, Defined: true}
}

// WriteResult writes the risk metrics, capital and category tables for one
// evaluation.
func WriteResult(w io.Writer, r risk.Result) error {
	if err := WriteRiskMetrics(w, r); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := WriteCapital(w, r.Capital); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return WriteCategories(w, r.Summary)
}

func WriteRiskMetrics(w io.Writer, r risk.Result) error {
	t := r.Summary.Totals
	scenario := r.Scenario
	if !r.KnownScenario {
		scenario += " (unknown, no stress)"
	}
	fmt.Fprintf(w, "Risk metrics: %s x%.2f\n", scenario, r.Multiplier)

	tw := newTable(w)
	row(tw, "Metric", "Value")
	row(tw, "Loans", fmt.Sprint(t.Loans))
	row(tw, "Excluded", fmt.Sprint(len(r.Excluded)))
	row(tw, "Uncategorized", fmt.Sprint(r.Summary.Uncategorized))
	row(tw, "Total Exposure", Money(t.Exposure))
	row(tw, "Expected Loss", Money(t.EL))
	row(tw, "EL % of Exposure", Pct(t.ELPct))
	row(tw, "Weighted PD", fraction(t.WeightedPD))
	row(tw, "RWA", Money(t.RWA))
	return tw.Flush()
}

// WriteCapital writes each capital component with its share of RWA.
func WriteCapital(w io.Writer, c risk.CapitalRequirement) error {
	fmt.Fprintln(w, "Capital requirements")
	tw := newTable(w)
	row(tw, "Component", "Amount", "% of RWA")
	row(tw, "RWA", Money(c.RWA), Pct(pctOf(c.RWA, c.RWA)))
	row(tw, "Tier 1 Capital", Money(c.Tier1Capital), Pct(pctOf(c.Tier1Capital, c.RWA)))
	row(tw, "Total Capital", Money(c.TotalCapital), Pct(pctOf(c.TotalCapital, c.RWA)))
	row(tw, "With Buffer", Money(c.CapitalWithBuffer), Pct(pctOf(c.CapitalWithBuffer, c.RWA)))
	return tw.Flush()
}

func WriteCategories(w io.Writer, s risk.Summary) error {
	fmt.Fprintln(w, "Risk categories")
	tw := newTable(w)
	row(tw, "Category", "Loans", "EAD", "EL", "% of Exposure", "EL % of EAD")
	for _, c := range s.Categories {
		row(tw, c.Category, fmt.Sprint(c.Loans), Money(c.EAD), Money(c.EL),
			Pct(c.ExposurePct), Pct(c.ELPctOfEAD))
	}
	return tw.Flush()
}

// WriteLoans writes the per-loan stress metrics.
func WriteLoans(w io.Writer, rows []risk.Categorized) error {
	tw := newTable(w)
	row(tw, "ID", "Category", "Base PD", "PD", "LGD", "EAD", "Weight", "EL", "RWA")
	for _, l := range rows {
		cat := l.Category
		if cat == "" {
			cat = "-"
		}
		row(tw, l.ID, cat, Prob(l.BasePD), Prob(l.PD), Prob(l.LGD), Money(l.EAD),
			fmt.Sprintf("%.2f", l.RiskWeight), Money(l.EL), Money(l.RWA))
	}
	return tw.Flush()
}

// WriteComparison writes a normal-versus-stressed table.
func WriteComparison(w io.Writer, rows []risk.StressComparison) error {
	tw := newTable(w)
	row(tw, "Metric", "Normal", "Stressed", "Change")
	for _, c := range rows {
		row(tw, c.Metric, Money(c.Normal), Money(c.Stressed), Pct(c.ChangePct))
	}
	return tw.Flush()
}

// WriteScenarios lines up several evaluations of the same portfolio.
func WriteScenarios(w io.Writer, results []risk.Result) error {
	tw := newTable(w)
	row(tw, "Scenario", "Multiplier", "Exposure", "EL", "RWA", "Tier 1", "Total", "With Buffer")
	for _, r := range results {
		t := r.Summary.Totals
		row(tw, r.Scenario, fmt.Sprintf("%.2f", r.Multiplier), Money(t.Exposure), Money(t.EL),
			Money(t.RWA), Money(r.Capital.Tier1Capital), Money(r.Capital.TotalCapital),
			Money(r.Capital.CapitalWithBuffer))
	}
	return tw.Flush()
}

// WriteExposureByWeight writes the EAD and RWA carried at each risk weight.
func WriteExposureByWeight(w io.Writer, buckets []risk.WeightBucket) error {
	var total float64
	for _, b := range buckets {
		total += b.EAD
	}

	tw := newTable(w)
	row(tw, "Weight", "Loans", "EAD", "% of EAD", "RWA")
	for _, b := range buckets {
		row(tw, fmt.Sprintf("%.0f%%", b.Weight*100), fmt.Sprint(b.Loans), Money(b.EAD),
			Pct(pctOf(b.EAD, total)), Money(b.RWA))
	}
	return tw.Flush()
}

// CapitalStack splits a scenario's buffered requirement into its layers.
type CapitalStack struct {
	Scenario   string  `json:"scenario"`
	Tier1      float64 `json:"tier1"`
	Additional float64 `json:"additional"` // total - tier 1
	Buffer     float64 `json:"buffer"`     // with buffer - total
}

func (s CapitalStack) Total() float64 {
	return s.Tier1 + s.Additional + s.Buffer
}

func Stack(results []risk.Result) []CapitalStack {
	out := make([]CapitalStack, len(results))
	for i, r := range results {
		c := r.Capital
		out[i] = CapitalStack{
			Scenario:   r.Scenario,
			Tier1:      c.Tier1Capital,
			Additional: c.TotalCapital - c.Tier1Capital,
			Buffer:     c.CapitalWithBuffer - c.TotalCapital,
		}
	}
	return out
}

func WriteCapitalStack(w io.Writer, stacks []CapitalStack) error {
	tw := newTable(w)
	row(tw, "Scenario", "Tier 1", "Additional", "Buffer", "Total")
	for _, s := range stacks {
		row(tw, s.Scenario, Money(s.Tier1), Money(s.Additional), Money(s.Buffer), Money(s.Total()))
	}
	return tw.Flush()
}

// WriteDecision writes an adequacy verdict and any shortfalls.
func WriteDecision(w io.Writer, d risk.Decision) error {
	verdict := "ADEQUATE"
	if !d.Adequate {
		verdict = "INADEQUATE"
	}
	ratio := "n/a"
	if d.RatioKnown {
		ratio = Pct(risk.Ratio{Value: d.Ratio * 100, Defined: true})
	}
	fmt.Fprintf(w, "Capital adequacy: %s (available %s, ratio %s)\n", verdict, Money(d.Available), ratio)

	tw := newTable(w)
	row(tw, "Requirement", "Amount", "Met")
	req := d.Requirement
	for _, r := range []struct {
		name string
		amt  float64
	}{
		{"Tier 1 Capital", req.Tier1Capital},
		{"Total Capital", req.TotalCapital},
		{"With Buffer", req.CapitalWithBuffer},
	} {
		row(tw, r.name, Money(r.amt), yesNo(risk.CapitalAdequacy(d.Available, r.amt)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, v := range d.Violations {
		fmt.Fprintf(w, "  %s: %s\n", v.Code, v.Msg)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// WriteLoanRecords writes journaled per-loan rows.
func WriteLoanRecords(w io.Writer, rows []journal.LoanRecord) error {
	tw := newTable(w)
	row(tw, "ID", "Category", "Base PD", "PD", "LGD", "EAD", "Weight", "EL", "RWA")
	for _, l := range rows {
		row(tw, l.LoanID, l.Category, Prob(l.BasePD), Prob(l.PD), Prob(l.LGD), Money(l.EAD),
			fmt.Sprintf("%.2f", l.RiskWeight), Money(l.EL), Money(l.RWA))
	}
	return tw.Flush()
}
