package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdGrid() []float64 {
	pds := make([]float64, 0, 501)
	for i := 0; i <= 500; i++ {
		pds = append(pds, float64(i)/500)
	}
	return pds
}

func TestMultiplier(t *testing.T) {
	t.Parallel()

	s := DefaultScenarios()
	tests := []struct {
		name  string
		want  float64
		known bool
	}{
		{Normal, 1.0, true},
		{Mild, 1.5, true},
		{Moderate, 2.0, true},
		{Severe, 3.0, true},
		{"apocalypse", 1.0, false},
		{"", 1.0, false},
	}
	for _, tt := range tests {
		m, ok := s.Multiplier(tt.name)
		assert.Equal(t, tt.want, m, tt.name)
		assert.Equal(t, tt.known, ok, tt.name)
	}
}

func TestApplyStressNormalIsIdentity(t *testing.T) {
	t.Parallel()

	pds := pdGrid()
	assert.Equal(t, pds, DefaultScenarios().ApplyStress(pds, Normal))
	assert.Equal(t, pds, DefaultScenarios().ApplyStress(pds, "no-such-scenario"))
}

func TestApplyStressClampAndMonotonic(t *testing.T) {
	t.Parallel()

	s := DefaultScenarios()
	pds := pdGrid()
	mild := s.ApplyStress(pds, Mild)
	moderate := s.ApplyStress(pds, Moderate)
	severe := s.ApplyStress(pds, Severe)

	for i, pd := range pds {
		for _, v := range []float64{mild[i], moderate[i], severe[i]} {
			assert.LessOrEqual(t, v, 1.0)
			assert.GreaterOrEqual(t, v, pd)
		}
		assert.LessOrEqual(t, mild[i], moderate[i])
		assert.LessOrEqual(t, moderate[i], severe[i])
		if mild[i] == moderate[i] || moderate[i] == severe[i] {
			assert.True(t, severe[i] == 1.0 || pd == 0, "equality off the ceiling at pd=%v", pd)
		}
	}
}

func TestApplyStressExamples(t *testing.T) {
	t.Parallel()

	s := DefaultScenarios()
	assert.InDelta(t, 0.08, s.ApplyStress([]float64{0.04}, Moderate)[0], 1e-12)
	assert.Equal(t, 1.0, s.ApplyStress([]float64{0.5}, Severe)[0])
	assert.Empty(t, s.ApplyStress(nil, Severe))
}

func TestScenarioNamesAndValidate(t *testing.T) {
	t.Parallel()

	s := DefaultScenarios()
	assert.Equal(t, []string{Normal, Mild, Moderate, Severe}, s.Names())
	assert.NoError(t, s.Validate())

	err := ScenarioSet{"recovery": 0.5}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be >= 1.0")
	assert.Error(t, ScenarioSet{}.Validate())
	assert.Error(t, ScenarioSet{"x": math.NaN()}.Validate())
}

func TestSummarizeStress(t *testing.T) {
	t.Parallel()

	regime := DefaultRegime()
	normal := Metrics{Exposure: 1000, CapitalRequirement: regime.Requirements(500)}
	stressed := Metrics{Exposure: 1000, CapitalRequirement: regime.Requirements(750)}

	rows := SummarizeStress(normal, stressed)
	require.Len(t, rows, 5)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Metric
	}
	assert.Equal(t, []string{"Total Exposure", "RWA", "Tier 1 Capital", "Total Capital", "With Buffer"}, names)

	assert.True(t, rows[0].ChangePct.Defined)
	assert.InDelta(t, 0.0, rows[0].ChangePct.Value, 1e-12)
	for _, r := range rows[1:] {
		assert.True(t, r.ChangePct.Defined)
		assert.InDelta(t, 50.0, r.ChangePct.Value, 1e-9, r.Metric)
	}
}

func TestSummarizeStressZeroBaseline(t *testing.T) {
	t.Parallel()

	rows := SummarizeStress(Metrics{}, Metrics{Exposure: 10})
	for _, r := range rows {
		assert.False(t, r.ChangePct.Defined, r.Metric)
		assert.True(t, math.IsNaN(r.ChangePct.Value), r.Metric)
		_, err := r.ChangePct.Float()
		assert.ErrorIs(t, err, ErrUndefined)
	}
}
