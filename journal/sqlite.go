package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/creditrisk/risk"
)

var ErrNotFound = errors.New("journal: not found")

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	return insertRun(j.db, r)
}

func insertRun(db execer, r RunRecord) error {
	_, err := db.Exec(`
		INSERT INTO runs
		(run_id, created, source, scenario, multiplier, loans, excluded,
		 exposure, rwa, el, weighted_pd, tier1_capital, total_capital, capital_with_buffer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC(), r.Source, r.Scenario, r.Multiplier, r.Loans, r.Excluded,
		r.Exposure, r.RWA, r.EL, nullRatio(r.WeightedPD),
		r.Tier1Capital, r.TotalCapital, r.CapitalWithBuffer,
	)
	return err
}

// RecordLoans inserts all rows in one transaction.
func (j *SQLiteJournal) RecordLoans(rows []LoanRecord) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	if err := insertLoans(tx, rows); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// RecordResult writes a run and its loans in one transaction, so a failed
// loan insert leaves no run behind.
func (j *SQLiteJournal) RecordResult(run RunRecord, rows []LoanRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	if err := insertRun(tx, run); err != nil {
		tx.Rollback()
		return err
	}
	if err := insertLoans(tx, rows); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertLoans(tx *sql.Tx, rows []LoanRecord) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`
		INSERT INTO run_loans
		(run_id, loan_id, category, base_pd, pd, lgd, ead, risk_weight, el, rwa)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.Exec(l.RunID, l.LoanID, l.Category, l.BasePD, l.PD,
			l.LGD, l.EAD, l.RiskWeight, l.EL, l.RWA); err != nil {
			return fmt.Errorf("loan %s: %w", l.LoanID, err)
		}
	}
	return nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

const runColumns = `run_id, created, source, scenario, multiplier, loans, excluded,
	exposure, rwa, el, weighted_pd, tier1_capital, total_capital, capital_with_buffer`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		r  RunRecord
		wp sql.NullFloat64
	)
	err := s.Scan(&r.RunID, &r.Created, &r.Source, &r.Scenario, &r.Multiplier,
		&r.Loans, &r.Excluded, &r.Exposure, &r.RWA, &r.EL, &wp,
		&r.Tier1Capital, &r.TotalCapital, &r.CapitalWithBuffer)
	if err != nil {
		return RunRecord{}, err
	}
	r.WeightedPD = risk.Ratio{Value: math.NaN()}
	if wp.Valid {
		r.WeightedPD = risk.Ratio{Value: wp.Float64, Defined: true}
	}
	return r, nil
}

// GetRun returns a single run by ID.
func (j *SQLiteJournal) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return r, err
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns all.
func (j *SQLiteJournal) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	q := `SELECT ` + runColumns + ` FROM runs ORDER BY created DESC, run_id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLoansByRunID returns a run's loans ordered by loan ID.
func (j *SQLiteJournal) ListLoansByRunID(ctx context.Context, runID string) ([]LoanRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, loan_id, category, base_pd, pd, lgd, ead, risk_weight, el, rwa
		FROM run_loans
		WHERE run_id = ?
		ORDER BY loan_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LoanRecord
	for rows.Next() {
		var l LoanRecord
		if err := rows.Scan(&l.RunID, &l.LoanID, &l.Category, &l.BasePD, &l.PD,
			&l.LGD, &l.EAD, &l.RiskWeight, &l.EL, &l.RWA); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportRunOrg loads a run and returns its Org block.
func (j *SQLiteJournal) ExportRunOrg(ctx context.Context, runID string) (string, error) {
	r, err := j.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	return FormatRunOrg(r), nil
}

func nullRatio(r risk.Ratio) sql.NullFloat64 {
	return sql.NullFloat64{Float64: r.Value, Valid: r.Defined}
}
