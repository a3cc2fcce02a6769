// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/creditrisk/risk"
)

// RunRecord is the portfolio-level outcome of one evaluation.
type RunRecord struct {
	RunID      string
	Created    time.Time
	Source     string // input the loans came from
	Scenario   string
	Multiplier float64

	Loans    int
	Excluded int

	Exposure   float64
	RWA        float64
	EL         float64
	WeightedPD risk.Ratio

	Tier1Capital      float64
	TotalCapital      float64
	CapitalWithBuffer float64
}

// LoanRecord is one loan's metrics within a run.
type LoanRecord struct {
	RunID      string
	LoanID     string
	Category   string
	BasePD     float64
	PD         float64
	LGD        float64
	EAD        float64
	RiskWeight float64
	EL         float64
	RWA        float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordLoans([]LoanRecord) error
	Close() error
}

// NewRunRecord flattens an engine result for journaling.
func NewRunRecord(runID string, created time.Time, source string, r risk.Result) RunRecord {
	t := r.Summary.Totals
	return RunRecord{
		RunID:             runID,
		Created:           created,
		Source:            source,
		Scenario:          r.Scenario,
		Multiplier:        r.Multiplier,
		Loans:             t.Loans,
		Excluded:          len(r.Excluded),
		Exposure:          t.Exposure,
		RWA:               t.RWA,
		EL:                t.EL,
		WeightedPD:        t.WeightedPD,
		Tier1Capital:      r.Capital.Tier1Capital,
		TotalCapital:      r.Capital.TotalCapital,
		CapitalWithBuffer: r.Capital.CapitalWithBuffer,
	}
}

// NewLoanRecords flattens the per-loan rows of an engine result.
func NewLoanRecords(runID string, r risk.Result) []LoanRecord {
	out := make([]LoanRecord, len(r.Loans))
	for i, l := range r.Loans {
		out[i] = LoanRecord{
			RunID:      runID,
			LoanID:     l.ID,
			Category:   l.Category,
			BasePD:     l.BasePD,
			PD:         l.PD,
			LGD:        l.LGD,
			EAD:        l.EAD,
			RiskWeight: l.RiskWeight,
			EL:         l.EL,
			RWA:        l.RWA,
		}
	}
	return out
}

// ResultRecorder is implemented by journals that can write a run and its
// loans atomically.
type ResultRecorder interface {
	RecordResult(RunRecord, []LoanRecord) error
}

// Record writes a result and its loans under a fresh run ID and returns
// the record written.
func Record(j Journal, source string, r risk.Result) (RunRecord, error) {
	id := NewRunID()
	run := NewRunRecord(id, time.Now().UTC(), source, r)
	if rr, ok := j.(ResultRecorder); ok {
		if err := rr.RecordResult(run, NewLoanRecords(id, r)); err != nil {
			return RunRecord{}, err
		}
		return run, nil
	}
	if err := j.RecordRun(run); err != nil {
		return RunRecord{}, err
	}
	if err := j.RecordLoans(NewLoanRecords(id, r)); err != nil {
		return RunRecord{}, err
	}
	return run, nil
}
