package model

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rustyeddy/creditrisk/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticScore(t *testing.T) {
	t.Parallel()

	m := Logistic{Intercept: 0, Coefficients: []float64{1, -1}}

	pd, err := m.Score([]float64{2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pd, 1e-12)

	pd, err = m.Score([]float64{3, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-3)), pd, 1e-12)

	_, err = m.Score([]float64{1})
	assert.ErrorIs(t, err, ErrFeatureCount)

	_, err = m.Score([]float64{math.NaN(), 0})
	assert.ErrorIs(t, err, risk.ErrInvalidInput)
}

func TestScoreAll(t *testing.T) {
	t.Parallel()

	m := Logistic{Intercept: -2, Coefficients: []float64{0.5}}
	got, err := ScoreAll(context.Background(), m, []Row{
		{ID: "a", Features: []float64{0}},
		{ID: "b", Features: []float64{4}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(2)), got["a"], 1e-12)
	assert.InDelta(t, 0.5, got["b"], 1e-12)
}

func TestScoreAllRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	bad := ScorerFunc(func([]float64) (float64, error) { return 1.2, nil })
	_, err := ScoreAll(context.Background(), bad, []Row{{ID: "x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, risk.ErrInvalidInput)

	var le *risk.LoanError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "x", le.ID)
}

func TestScoreAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ScoreAll(ctx, Logistic{}, []Row{{ID: "a"}})
	assert.ErrorIs(t, err, context.Canceled)
}
