package risk

import (
	"errors"
	"fmt"
)

// LGDModel is the rule-based loss-given-default estimate: a flat industry
// baseline, reduced for borrowers whose home is collateral.
type LGDModel struct {
	Base            float64 `json:"base" yaml:"base"`
	HomeOwnerFactor float64 `json:"home_owner_factor" yaml:"home_owner_factor"`
}

func DefaultLGDModel() LGDModel {
	return LGDModel{Base: 0.45, HomeOwnerFactor: 0.8}
}

// Estimate returns the LGD for one borrower.
func (m LGDModel) Estimate(ownsHome bool) float64 {
	if ownsHome {
		return m.Base * m.HomeOwnerFactor
	}
	return m.Base
}

func (m LGDModel) Validate() error {
	if !finite(m.Base) || m.Base < 0 || m.Base > 1 {
		return fmt.Errorf("lgd.base must be within [0,1]")
	}
	if !finite(m.HomeOwnerFactor) || m.HomeOwnerFactor < 0 || m.Base*m.HomeOwnerFactor > 1 {
		return fmt.Errorf("lgd.home_owner_factor must keep LGD within [0,1]")
	}
	return nil
}

// ApplyLGD returns a copy of loans with LGD set from the model.
func (m LGDModel) ApplyLGD(loans []Loan) []Loan {
	out := make([]Loan, len(loans))
	for i, l := range loans {
		l.LGD = m.Estimate(l.OwnsHome)
		out[i] = l
	}
	return out
}

// AttachEAD sets each loan's EAD to its original principal as recorded in
// principal, keyed by loan ID. Loans with no entry are not defaulted to
// anything: they are left out of the returned slice and reported as
// ErrAlignment failures in the joined error. Amounts are carried as given;
// a negative or non-finite principal is left for the engine to screen out.
func AttachEAD(loans []Loan, principal map[string]float64) ([]Loan, error) {
	out := make([]Loan, 0, len(loans))
	var errs []error
	for _, l := range loans {
		amt, ok := principal[l.ID]
		if !ok {
			errs = append(errs, &LoanError{ID: l.ID, Err: ErrAlignment})
			continue
		}
		l.EAD = amt
		l.LoanAmount = amt
		out = append(out, l)
	}
	return out, errors.Join(errs...)
}

// ExpectedLoss is PD x LGD x EAD.
func ExpectedLoss(pd, lgd, ead float64) (float64, error) {
	if err := probability("pd", pd); err != nil {
		return 0, err
	}
	if err := probability("lgd", lgd); err != nil {
		return 0, err
	}
	if err := money("ead", ead); err != nil {
		return 0, err
	}
	return pd * lgd * ead, nil
}

// RiskWeightedAssets is EAD x risk weight.
func RiskWeightedAssets(ead, weight float64) (float64, error) {
	if err := money("ead", ead); err != nil {
		return 0, err
	}
	if !finite(weight) || weight < 0 {
		return 0, invalid("risk_weight", weight, "must be a non-negative number")
	}
	return ead * weight, nil
}

func probability(name string, v float64) error {
	if !finite(v) || v < 0 || v > 1 {
		return invalid(name, v, "must be within [0,1]")
	}
	return nil
}

func money(name string, v float64) error {
	if !finite(v) || v < 0 {
		return invalid(name, v, "must be a non-negative amount")
	}
	return nil
}
