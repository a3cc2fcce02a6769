package risk

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Assessment is a loan with its derived metrics under one scenario. PD is
// the PD the metrics were computed with; BasePD is the unstressed input.
// LGD and EAD are carried through untouched.
type Assessment struct {
	Loan
	BasePD     float64 `json:"base_pd"`
	RiskWeight float64 `json:"risk_weight"`
	EL         float64 `json:"el"`
	RWA        float64 `json:"rwa"`
}

// Observer receives every Result the engine produces. Implementations must
// be safe for concurrent use.
type Observer interface {
	Observe(Result)
}

// Engine runs the classify -> EL/RWA -> stress -> capital -> summary
// pipeline. It holds configuration only; every call works on its own
// snapshot of loans, so one Engine may serve concurrent evaluations.
type Engine struct {
	Tiers      Tiers
	Categories Categories
	Scenarios  ScenarioSet
	Regime     Regime

	// Strict aborts an evaluation on the first invalid loan instead of
	// excluding it and carrying on.
	Strict bool

	Logger   *zap.Logger
	Observer Observer
}

// NewEngine returns an Engine with the default Basel III settings.
func NewEngine() *Engine {
	return &Engine{
		Tiers:      DefaultTiers(),
		Categories: DefaultCategories(),
		Scenarios:  DefaultScenarios(),
		Regime:     DefaultRegime(),
	}
}

func (e *Engine) Validate() error {
	if err := e.Tiers.Validate(); err != nil {
		return err
	}
	if err := e.Categories.Validate(); err != nil {
		return err
	}
	if err := e.Scenarios.Validate(); err != nil {
		return err
	}
	return e.Regime.Validate()
}

// Result is one evaluated portfolio under one scenario.
type Result struct {
	Scenario      string             `json:"scenario"`
	Multiplier    float64            `json:"multiplier"`
	KnownScenario bool               `json:"known_scenario"`
	Loans         []Categorized      `json:"loans"`
	Summary       Summary            `json:"summary"`
	Capital       CapitalRequirement `json:"capital"`
	ExcludedCount int                `json:"excluded_count"`
	Excluded      []*LoanError       `json:"excluded,omitempty"`
}

// Metrics extracts the aggregates used by SummarizeStress.
func (r Result) Metrics() Metrics {
	return Metrics{Exposure: r.Summary.Totals.Exposure, CapitalRequirement: r.Capital}
}

// Assessments returns the per-loan rows without their category labels.
func (r Result) Assessments() []Assessment {
	out := make([]Assessment, len(r.Loans))
	for i, l := range r.Loans {
		out[i] = l.Assessment
	}
	return out
}

// Assess evaluates loans under the normal scenario.
func (e *Engine) Assess(loans []Loan) (Result, error) {
	return e.Evaluate(loans, Normal)
}

// Evaluate stresses every PD by the scenario's multiplier, then recomputes
// risk weight, EL and RWA from the stressed PD with the loan's own LGD and
// EAD, and aggregates the portfolio. An unknown scenario runs as normal.
func (e *Engine) Evaluate(loans []Loan, scenario string) (Result, error) {
	log := e.logger().With(zap.String("scenario", scenario))

	valid, excluded, err := e.screen(loans)
	if err != nil {
		return Result{}, err
	}

	m, known := e.Scenarios.Multiplier(scenario)
	if !known {
		log.Debug("unknown scenario, using identity multiplier")
	}

	base := make([]float64, len(valid))
	for i, l := range valid {
		base[i] = l.PD
	}
	stressed := stress(base, m)
	weights := e.Tiers.Weights(stressed)

	rows := make([]Assessment, 0, len(valid))
	for i, l := range valid {
		a, err := assess(l, stressed[i], weights[i])
		if err != nil {
			le := &LoanError{ID: l.ID, Err: err}
			if e.Strict {
				return Result{}, le
			}
			excluded = append(excluded, le)
			continue
		}
		rows = append(rows, a)
	}

	summary, labelled := e.Categories.Summarize(rows)
	res := Result{
		Scenario:      scenario,
		Multiplier:    m,
		KnownScenario: known,
		Loans:         labelled,
		Summary:       summary,
		Capital:       e.Regime.Requirements(summary.Totals.RWA),
		ExcludedCount: len(excluded),
		Excluded:      excluded,
	}

	if len(excluded) > 0 {
		log.Warn("excluded invalid loans",
			zap.Int("excluded", len(excluded)),
			zap.Int("loans", len(loans)),
			zap.Error(excluded[0]))
	}
	log.Debug("evaluated portfolio",
		zap.Float64("multiplier", m),
		zap.Int("loans", summary.Totals.Loans),
		zap.Float64("exposure", summary.Totals.Exposure),
		zap.Float64("rwa", summary.Totals.RWA),
		zap.Float64("el", summary.Totals.EL))

	if e.Observer != nil {
		e.Observer.Observe(res)
	}
	return res, nil
}

func assess(l Loan, pd, weight float64) (Assessment, error) {
	el, err := ExpectedLoss(pd, l.LGD, l.EAD)
	if err != nil {
		return Assessment{}, err
	}
	rwa, err := RiskWeightedAssets(l.EAD, weight)
	if err != nil {
		return Assessment{}, err
	}

	a := Assessment{Loan: l, BasePD: l.PD, RiskWeight: weight, EL: el, RWA: rwa}
	a.PD = pd
	return a, nil
}

// EvaluateScenarios evaluates the same loans under each named scenario in
// parallel. Results come back in the order the names were given; with no
// names every configured scenario is run, mildest first.
func (e *Engine) EvaluateScenarios(ctx context.Context, loans []Loan, names ...string) ([]Result, error) {
	if len(names) == 0 {
		names = e.Scenarios.Names()
	}

	out := make([]Result, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := e.Evaluate(loans, name)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", name, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// StressTest is a normal run, a stressed run, and their comparison.
type StressTest struct {
	Normal     Result             `json:"normal"`
	Stressed   Result             `json:"stressed"`
	Comparison []StressComparison `json:"comparison"`
}

// StressTest evaluates loans under normal and scenario and compares the two.
func (e *Engine) StressTest(ctx context.Context, loans []Loan, scenario string) (StressTest, error) {
	rs, err := e.EvaluateScenarios(ctx, loans, Normal, scenario)
	if err != nil {
		return StressTest{}, err
	}
	return StressTest{
		Normal:     rs[0],
		Stressed:   rs[1],
		Comparison: SummarizeStress(rs[0].Metrics(), rs[1].Metrics()),
	}, nil
}

func (e *Engine) screen(loans []Loan) ([]Loan, []*LoanError, error) {
	valid := make([]Loan, 0, len(loans))
	var excluded []*LoanError
	for _, l := range loans {
		err := ValidateLoan(l)
		if err == nil {
			valid = append(valid, l)
			continue
		}
		if e.Strict {
			return nil, nil, err
		}
		var le *LoanError
		if !errors.As(err, &le) {
			le = &LoanError{ID: l.ID, Err: err}
		}
		excluded = append(excluded, le)
	}
	return valid, excluded, nil
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
