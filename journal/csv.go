// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	runHeader = []string{
		"run_id", "created", "source", "scenario", "multiplier",
		"loans", "excluded", "exposure", "rwa", "el", "weighted_pd",
		"tier1_capital", "total_capital", "capital_with_buffer",
	}
	loanHeader = []string{
		"run_id", "loan_id", "category", "base_pd", "pd", "lgd",
		"ead", "risk_weight", "el", "rwa",
	}
)

// CSVJournal appends runs (and optionally loans) to CSV files. A header is
// written only when a file is created or empty.
type CSVJournal struct {
	runs  *csv.Writer
	loans *csv.Writer
	rf    *os.File
	lf    *os.File
}

// NewCSV opens runsPath for appending. loansPath may be empty to skip
// per-loan rows.
func NewCSV(runsPath, loansPath string) (*CSVJournal, error) {
	rf, rw, err := openAppend(runsPath, runHeader)
	if err != nil {
		return nil, err
	}
	j := &CSVJournal{runs: rw, rf: rf}

	if loansPath != "" {
		lf, lw, err := openAppend(loansPath, loanHeader)
		if err != nil {
			rf.Close()
			return nil, err
		}
		j.loans, j.lf = lw, lf
	}
	return j, nil
}

func openAppend(path string, header []string) (*os.File, *csv.Writer, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	st, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, nil, err
	}

	w := csv.NewWriter(fh)
	if st.Size() == 0 {
		if err := w.Write(header); err != nil {
			fh.Close()
			return nil, nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			fh.Close()
			return nil, nil, err
		}
	}
	return fh, w, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		r.Source,
		r.Scenario,
		f(r.Multiplier),
		strconv.Itoa(r.Loans),
		strconv.Itoa(r.Excluded),
		f(r.Exposure),
		f(r.RWA),
		f(r.EL),
		ratioField(r.WeightedPD.Value, r.WeightedPD.Defined),
		f(r.Tier1Capital),
		f(r.TotalCapital),
		f(r.CapitalWithBuffer),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

// RecordLoans is a no-op when the journal has no loans file.
func (j *CSVJournal) RecordLoans(rows []LoanRecord) error {
	if j.loans == nil {
		return nil
	}
	for _, l := range rows {
		err := j.loans.Write([]string{
			l.RunID,
			l.LoanID,
			l.Category,
			f(l.BasePD),
			f(l.PD),
			f(l.LGD),
			f(l.EAD),
			f(l.RiskWeight),
			f(l.EL),
			f(l.RWA),
		})
		if err != nil {
			return err
		}
	}
	j.loans.Flush()
	return j.loans.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	errs := []error{j.runs.Error(), j.rf.Close()}
	if j.loans != nil {
		j.loans.Flush()
		errs = append(errs, j.loans.Error(), j.lf.Close())
	}
	return errors.Join(errs...)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// ratioField leaves undefined ratios blank.
func ratioField(v float64, defined bool) string {
	if !defined {
		return ""
	}
	return f(v)
}
