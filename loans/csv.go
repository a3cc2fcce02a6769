// Package loans reads the loan tables that feed the risk engine and joins
// them by explicit loan ID.
package loans

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rustyeddy/creditrisk/model"
)

var ErrMissingColumn = errors.New("missing column")

// Raw is one row of the source-of-truth loan table.
type Raw struct {
	ID            string
	LoanAmount    float64
	HomeOwnership string
	Status        string
}

func (r Raw) OwnsHome() bool {
	return strings.EqualFold(strings.TrimSpace(r.HomeOwnership), "OWN")
}

// Scored is a loan ID with the PD the model produced for it.
type Scored struct {
	ID string
	PD float64
}

// table wraps a csv.Reader with header-name lookups.
type table struct {
	r    *csv.Reader
	cols map[string]int
	line int
}

func newTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return &table{r: cr, cols: cols, line: 1}, nil
}

func (t *table) require(names ...string) error {
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
	}
	return nil
}

func (t *table) next() ([]string, error) {
	rec, err := t.r.Read()
	if err != nil {
		return nil, err
	}
	t.line++
	return rec, nil
}

func (t *table) str(rec []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (t *table) float(rec []string, name string) (float64, error) {
	s := t.str(rec, name)
	if s == "" {
		return 0, fmt.Errorf("line %d: %s is empty", t.line, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", t.line, name, err)
	}
	return v, nil
}

func (t *table) id(rec []string) (string, error) {
	id := t.str(rec, "id")
	if id == "" {
		return "", fmt.Errorf("line %d: id is empty", t.line)
	}
	return id, nil
}

// ReadRaw reads a raw loan table. Required columns: id, loan_amnt.
// home_ownership and loan_status are optional.
func ReadRaw(r io.Reader) ([]Raw, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "loan_amnt"); err != nil {
		return nil, err
	}

	var out []Raw
	seen := map[string]bool{}
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id, err := t.id(rec)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("line %d: duplicate id %q", t.line, id)
		}
		seen[id] = true

		amt, err := t.float(rec, "loan_amnt")
		if err != nil {
			return nil, err
		}
		out = append(out, Raw{
			ID:            id,
			LoanAmount:    amt,
			HomeOwnership: t.str(rec, "home_ownership"),
			Status:        t.str(rec, "loan_status"),
		})
	}
	return out, nil
}

// ReadScored reads a table of model output. Required columns: id, pd.
func ReadScored(r io.Reader) ([]Scored, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "pd"); err != nil {
		return nil, err
	}

	var out []Scored
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id, err := t.id(rec)
		if err != nil {
			return nil, err
		}
		pd, err := t.float(rec, "pd")
		if err != nil {
			return nil, err
		}
		out = append(out, Scored{ID: id, PD: pd})
	}
	return out, nil
}

// ReadFeatures reads the id column and the named feature columns, in the
// given order, as model input rows.
func ReadFeatures(r io.Reader, features []string) ([]model.Row, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	lower := make([]string, len(features))
	for i, f := range features {
		lower[i] = strings.ToLower(f)
	}
	if err := t.require(append([]string{"id"}, lower...)...); err != nil {
		return nil, err
	}

	var out []model.Row
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id, err := t.id(rec)
		if err != nil {
			return nil, err
		}
		x := make([]float64, len(lower))
		for i, f := range lower {
			if x[i], err = t.float(rec, f); err != nil {
				return nil, err
			}
		}
		out = append(out, model.Row{ID: id, Features: x})
	}
	return out, nil
}
