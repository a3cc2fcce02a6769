package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatRunOrg renders a RunRecord as an Org-mode block. Structured facts
// go in a PROPERTIES drawer; the Notes heading is left for the analyst.
func FormatRunOrg(r RunRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Run: %s (%s)\n", r.Scenario, shortID(r.RunID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":RUN_ID: %s\n", r.RunID)
	fmt.Fprintf(&b, ":CREATED: %s\n", r.Created.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":SOURCE: %s\n", r.Source)
	fmt.Fprintf(&b, ":SCENARIO: %s\n", r.Scenario)
	fmt.Fprintf(&b, ":MULTIPLIER: %.2f\n", r.Multiplier)
	fmt.Fprintf(&b, ":LOANS: %d\n", r.Loans)
	fmt.Fprintf(&b, ":EXCLUDED: %d\n", r.Excluded)
	fmt.Fprintf(&b, ":EXPOSURE: %.2f\n", r.Exposure)
	fmt.Fprintf(&b, ":RWA: %.2f\n", r.RWA)
	fmt.Fprintf(&b, ":EL: %.2f\n", r.EL)
	if r.WeightedPD.Defined {
		fmt.Fprintf(&b, ":WEIGHTED_PD: %.4f\n", r.WeightedPD.Value)
	} else {
		b.WriteString(":WEIGHTED_PD: n/a\n")
	}
	fmt.Fprintf(&b, ":TIER1_CAPITAL: %.2f\n", r.Tier1Capital)
	fmt.Fprintf(&b, ":TOTAL_CAPITAL: %.2f\n", r.TotalCapital)
	fmt.Fprintf(&b, ":CAPITAL_WITH_BUFFER: %.2f\n", r.CapitalWithBuffer)
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatRunsOrg renders multiple runs separated by blank lines.
func FormatRunsOrg(runs []RunRecord) string {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatRunOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
