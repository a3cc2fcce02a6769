package journal

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/creditrisk/risk"
)

func TestFormatRunOrg(t *testing.T) {
	t.Parallel()

	r := RunRecord{
		RunID:             "01HV6Q0ABCDEF",
		Created:           time.Date(2024, 4, 5, 6, 7, 8, 0, time.UTC),
		Source:            "loans.csv",
		Scenario:          "moderate",
		Multiplier:        2,
		Loans:             4,
		Excluded:          1,
		Exposure:          43000,
		RWA:               36500,
		EL:                812.5,
		WeightedPD:        risk.Ratio{Value: 0.1234, Defined: true},
		Tier1Capital:      2190,
		TotalCapital:      2920,
		CapitalWithBuffer: 3832.5,
	}

	got := FormatRunOrg(r)
	for _, line := range []string{
		"** Run: moderate (01HV6Q0A)",
		":PROPERTIES:",
		":RUN_ID: 01HV6Q0ABCDEF",
		":CREATED: 2024-04-05T06:07:08Z",
		":MULTIPLIER: 2.00",
		":LOANS: 4",
		":EXCLUDED: 1",
		":RWA: 36500.00",
		":WEIGHTED_PD: 0.1234",
		":CAPITAL_WITH_BUFFER: 3832.50",
		":END:",
		"*** Notes",
	} {
		assert.Contains(t, got, line+"\n")
	}
}

func TestFormatRunOrgUndefinedPD(t *testing.T) {
	t.Parallel()

	got := FormatRunOrg(RunRecord{RunID: "X", WeightedPD: risk.Ratio{Value: math.NaN()}})
	assert.Contains(t, got, ":WEIGHTED_PD: n/a\n")
	assert.Contains(t, got, "** Run:  (X)")
}

func TestFormatRunsOrg(t *testing.T) {
	t.Parallel()

	got := FormatRunsOrg([]RunRecord{{RunID: "A"}, {RunID: "B"}})
	assert.Equal(t, 2, strings.Count(got, ":PROPERTIES:"))
	assert.Contains(t, got, "- \n\n\n** Run:")
	assert.Empty(t, FormatRunsOrg(nil))
}
