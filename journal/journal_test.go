package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/creditrisk/risk"
)

func sampleResult(t *testing.T) risk.Result {
	t.Helper()
	res, err := risk.NewEngine().Evaluate([]risk.Loan{
		{ID: "L1", LoanAmount: 10000, PD: 0.02, LGD: 0.45, EAD: 10000},
		{ID: "L2", LoanAmount: 5000, PD: 0.18, LGD: 0.36, EAD: 5000, OwnsHome: true},
		{ID: "", LoanAmount: 1000, PD: 0.5, LGD: 0.45, EAD: 1000},
	}, risk.Mild)
	require.NoError(t, err)
	return res
}

func TestNewRunRecord(t *testing.T) {
	t.Parallel()

	res := sampleResult(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRunRecord("R1", created, "loans.csv", res)

	assert.Equal(t, "R1", r.RunID)
	assert.Equal(t, created, r.Created)
	assert.Equal(t, "loans.csv", r.Source)
	assert.Equal(t, risk.Mild, r.Scenario)
	assert.Equal(t, 1.5, r.Multiplier)
	assert.Equal(t, 2, r.Loans)
	assert.Equal(t, 1, r.Excluded)
	assert.InDelta(t, 15000, r.Exposure, 1e-9)
	assert.InDelta(t, res.Summary.Totals.RWA, r.RWA, 1e-9)
	assert.InDelta(t, res.Capital.CapitalWithBuffer, r.CapitalWithBuffer, 1e-9)
	assert.True(t, r.WeightedPD.Defined)
}

func TestNewLoanRecords(t *testing.T) {
	t.Parallel()

	res := sampleResult(t)
	rows := NewLoanRecords("R1", res)
	require.Len(t, rows, 2)

	assert.Equal(t, "R1", rows[0].RunID)
	assert.Equal(t, "L1", rows[0].LoanID)
	assert.InDelta(t, 0.02, rows[0].BasePD, 1e-12)
	assert.InDelta(t, 0.03, rows[0].PD, 1e-12)
	assert.Equal(t, "Low", rows[0].Category)
	assert.Equal(t, 0.5, rows[0].RiskWeight)

	assert.InDelta(t, 0.27, rows[1].PD, 1e-12)
	assert.Equal(t, "High", rows[1].Category)
	assert.Equal(t, 1.0, rows[1].RiskWeight)
}

func TestNewRunIDMonotonic(t *testing.T) {
	t.Parallel()

	prev := NewRunID()
	assert.Len(t, prev, 26)
	for i := 0; i < 100; i++ {
		id := NewRunID()
		assert.Greater(t, id, prev)
		prev = id
	}
}
