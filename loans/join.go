package loans

import (
	"errors"
	"sort"
	"strings"

	"github.com/rustyeddy/creditrisk/risk"
)

// Join builds engine loans from scored rows and the raw table. EAD is the
// raw loan_amnt for the same ID and LGD comes from lgd. Scored IDs with no
// raw row are left out and reported as risk.ErrAlignment in the error; the
// loans that did align are still returned.
func Join(raw []Raw, scored []Scored, lgd risk.LGDModel) ([]risk.Loan, error) {
	byID := make(map[string]Raw, len(raw))
	principal := make(map[string]float64, len(raw))
	for _, r := range raw {
		byID[r.ID] = r
		principal[r.ID] = r.LoanAmount
	}

	loans := make([]risk.Loan, len(scored))
	for i, s := range scored {
		loans[i] = risk.Loan{
			ID:       s.ID,
			PD:       s.PD,
			OwnsHome: byID[s.ID].OwnsHome(),
		}
	}

	aligned, err := risk.AttachEAD(loans, principal)
	return lgd.ApplyLGD(aligned), err
}

// FromScores orders a score map by the raw table so results are stable.
// Raw rows with no score are skipped. Scored IDs with no raw row are
// reported as risk.ErrAlignment; the matched scores are still returned.
func FromScores(raw []Raw, pds map[string]float64) ([]Scored, error) {
	out := make([]Scored, 0, len(pds))
	known := make(map[string]bool, len(raw))
	for _, r := range raw {
		known[r.ID] = true
		if pd, ok := pds[r.ID]; ok {
			out = append(out, Scored{ID: r.ID, PD: pd})
		}
	}

	var missing []string
	for id := range pds {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	errs := make([]error, len(missing))
	for i, id := range missing {
		errs[i] = &risk.LoanError{ID: id, Err: risk.ErrAlignment}
	}
	return out, errors.Join(errs...)
}

var defaultStatuses = map[string]bool{
	"charged off":        true,
	"default":            true,
	"late (31-120 days)": true,
}

// IsDefault reports whether a loan_status value counts as a default.
func IsDefault(status string) bool {
	return defaultStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// DefaultRate is the share of raw loans whose status is a default. The
// second result is false for an empty table.
func DefaultRate(raw []Raw) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	n := 0
	for _, r := range raw {
		if IsDefault(r.Status) {
			n++
		}
	}
	return float64(n) / float64(len(raw)), true
}
