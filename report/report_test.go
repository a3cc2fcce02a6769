package report

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/creditrisk/journal"
	"github.com/rustyeddy/creditrisk/risk"
)

func portfolio() []risk.Loan {
	return []risk.Loan{
		{ID: "L1", LoanAmount: 10000, PD: 0.02, LGD: 0.45, EAD: 10000},
		{ID: "L2", LoanAmount: 8000, PD: 0.08, LGD: 0.36, EAD: 8000, OwnsHome: true},
		{ID: "L3", LoanAmount: 20000, PD: 0.2, LGD: 0.45, EAD: 20000},
	}
}

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{999.999, "$1,000.00"},
		{1234567.885, "$1,234,567.89"},
		{-4200.1, "-$4,200.10"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "Money(%v)", tt.in)
	}
}

func TestPct(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12.35%", Pct(risk.Ratio{Value: 12.345, Defined: true}))
	assert.Equal(t, "n/a", Pct(risk.Ratio{Value: math.NaN()}))
	assert.Equal(t, "0.0250", Prob(0.025))
}

func TestWriteResult(t *testing.T) {
	t.Parallel()

	res, err := risk.NewEngine().Assess(portfolio())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "Risk metrics: normal x1.00")
	assert.Contains(t, out, "$38,000.00")
	// RWA = 10000*0.5 + 8000*0.75 + 20000*1.0
	assert.Contains(t, out, "$31,000.00")
	assert.Contains(t, out, "Very High")
	// tier 1 is always 6% of RWA
	assert.Regexp(t, `Tier 1 Capital\s+\$1,860.00\s+6.00%`, out)
	assert.Regexp(t, `With Buffer\s+\$3,255.00\s+10.50%`, out)
}

func TestWriteCapitalZeroRWA(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCapital(&buf, risk.DefaultRegime().Requirements(0)))
	assert.Regexp(t, `Total Capital\s+\$0.00\s+n/a`, buf.String())
}

func TestWriteComparisonAndScenarios(t *testing.T) {
	t.Parallel()

	e := risk.NewEngine()
	st, err := e.StressTest(context.Background(), portfolio(), risk.Severe)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, st.Comparison))
	out := buf.String()
	assert.Regexp(t, `Total Exposure\s+\$38,000.00\s+\$38,000.00\s+0.00%`, out)
	assert.Contains(t, out, "RWA")

	results, err := e.EvaluateScenarios(context.Background(), portfolio())
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteScenarios(&buf, results))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], "normal"))
	assert.True(t, strings.HasPrefix(lines[4], "severe"))
}

func TestStack(t *testing.T) {
	t.Parallel()

	res := risk.Result{
		Scenario: "normal",
		Capital:  risk.DefaultRegime().Requirements(100000),
	}
	got := Stack([]risk.Result{res})
	require.Len(t, got, 1)
	assert.InDelta(t, 6000, got[0].Tier1, 1e-9)
	assert.InDelta(t, 2000, got[0].Additional, 1e-9)
	assert.InDelta(t, 2500, got[0].Buffer, 1e-9)
	assert.InDelta(t, res.Capital.CapitalWithBuffer, got[0].Total(), 1e-9)

	var buf bytes.Buffer
	require.NoError(t, WriteCapitalStack(&buf, got))
	assert.Regexp(t, `normal\s+\$6,000.00\s+\$2,000.00\s+\$2,500.00\s+\$10,500.00`, buf.String())
}

func TestWriteExposureByWeight(t *testing.T) {
	t.Parallel()

	res, err := risk.NewEngine().Assess(portfolio())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteExposureByWeight(&buf, risk.ExposureByWeight(res.Assessments())))
	out := buf.String()
	assert.Regexp(t, `50%\s+1\s+\$10,000.00`, out)
	assert.Regexp(t, `100%\s+1\s+\$20,000.00`, out)
}

func TestWriteLoans(t *testing.T) {
	t.Parallel()

	res, err := risk.NewEngine().Evaluate(portfolio(), risk.Moderate)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLoans(&buf, res.Loans))
	assert.Regexp(t, `L1\s+Low\s+0.0200\s+0.0400`, buf.String())
}

func TestWriteDecision(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := risk.DefaultRegime().Evaluate(7000, 100000)
	require.NoError(t, WriteDecision(&buf, d))
	out := buf.String()

	assert.Contains(t, out, "INADEQUATE")
	assert.Contains(t, out, "ratio 7.00%")
	assert.Regexp(t, `Tier 1 Capital\s+\$6,000.00\s+yes`, out)
	assert.Contains(t, out, "TOTAL_SHORTFALL")
	assert.Contains(t, out, "BUFFER_SHORTFALL")
}

func TestWriteJSONUndefinedRatio(t *testing.T) {
	t.Parallel()

	res, err := risk.NewEngine().Assess(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res.Summary.Totals))
	assert.Contains(t, buf.String(), `"weighted_pd": null`)
}

func TestWriteLoanRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteLoanRecords(&buf, []journal.LoanRecord{
		{RunID: "R1", LoanID: "L9", Category: "High", BasePD: 0.1, PD: 0.2, LGD: 0.45, EAD: 2500, RiskWeight: 1, EL: 225, RWA: 2500},
	}))
	assert.Regexp(t, `L9\s+High\s+0.1000\s+0.2000\s+0.4500\s+\$2,500.00\s+1.00\s+\$225.00`, buf.String())
}
