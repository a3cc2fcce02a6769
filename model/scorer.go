// Package model holds the PD-estimation capability the engine consumes.
// Any classifier that turns a feature vector into a default probability
// satisfies Scorer; training is done elsewhere.
package model

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/creditrisk/risk"
)

// Scorer returns the probability of default for one feature vector.
type Scorer interface {
	Score(features []float64) (float64, error)
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(features []float64) (float64, error)

func (f ScorerFunc) Score(features []float64) (float64, error) { return f(features) }

var ErrFeatureCount = errors.New("feature count mismatch")

// Logistic is a fitted logistic-regression scorer:
//
//	PD = 1 / (1 + exp(-(Intercept + sum(Coefficients[i] * x[i]))))
type Logistic struct {
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
}

func (m Logistic) Score(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: model has %d coefficients, got %d features",
			ErrFeatureCount, len(m.Coefficients), len(x))
	}
	z := m.Intercept
	for i, c := range m.Coefficients {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return 0, fmt.Errorf("%w: feature %d is not finite", risk.ErrInvalidInput, i)
		}
		z += c * x[i]
	}
	return 1 / (1 + math.Exp(-z)), nil
}

// Row is one loan's feature vector, keyed by loan ID.
type Row struct {
	ID       string
	Features []float64
}

// ScoreAll scores every row. A scorer returning a value outside [0,1] is
// reported as an invalid-input error for that loan.
func ScoreAll(ctx context.Context, s Scorer, rows []Row) (map[string]float64, error) {
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pd, err := s.Score(r.Features)
		if err != nil {
			return nil, &risk.LoanError{ID: r.ID, Err: err}
		}
		if math.IsNaN(pd) || pd < 0 || pd > 1 {
			return nil, &risk.LoanError{ID: r.ID, Err: fmt.Errorf("%w: score %v outside [0,1]", risk.ErrInvalidInput, pd)}
		}
		out[r.ID] = pd
	}
	return out, nil
}
