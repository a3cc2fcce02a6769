//go:build blackbox

package blackbox

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestAssessStressCompare_RecordsRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "creditrisk.sqlite")
	loansPath, scoresPath := writePortfolio(t, dir, 60)

	out := run(t, "--db", dbPath, "assess", "--loans", loansPath, "--scores", scoresPath)
	if !contains(out, "Risk metrics: normal") {
		t.Fatalf("expected risk metrics, got:\n%s", out)
	}

	out = run(t, "--db", dbPath, "stress", "severe", "--loans", loansPath, "--scores", scoresPath)
	if !contains(out, "Stress test: normal vs severe") {
		t.Fatalf("expected stress table, got:\n%s", out)
	}

	out = run(t, "--db", dbPath, "compare", "--loans", loansPath, "--scores", scoresPath)
	if !contains(out, "Capital stack") {
		t.Fatalf("expected capital stack, got:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// assess 1 + stress 2 + compare 4
	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 7 {
		t.Fatalf("expected 7 runs, got %d", runs)
	}

	var loans int
	if err := db.QueryRow(`SELECT COUNT(*) FROM run_loans`).Scan(&loans); err != nil {
		t.Fatal(err)
	}
	if loans != 7*60 {
		t.Fatalf("expected %d loan rows, got %d", 7*60, loans)
	}

	var capped int
	if err := db.QueryRow(`SELECT COUNT(*) FROM run_loans WHERE pd > 1.0`).Scan(&capped); err != nil {
		t.Fatal(err)
	}
	if capped != 0 {
		t.Fatalf("stressed PD exceeded 1.0 for %d loans", capped)
	}

	out = run(t, "--db", dbPath, "journal", "list", "-n", "1")
	if !contains(out, ":SCENARIO: severe") {
		t.Fatalf("expected latest run to be severe, got:\n%s", out)
	}
}

func TestCapitalCheck(t *testing.T) {
	out := run(t, "--no-journal", "capital", "--available", "12000", "--rwa", "100000")
	if !contains(out, "ADEQUATE") || contains(out, "INADEQUATE") {
		t.Fatalf("expected adequate capital, got:\n%s", out)
	}

	out = run(t, "--no-journal", "capital", "--available", "7000", "--rwa", "100000")
	if !contains(out, "TOTAL_SHORTFALL") {
		t.Fatalf("expected total shortfall, got:\n%s", out)
	}

	out = runFail(t, "--no-journal", "capital", "--rwa", "100")
	if !contains(out, "--available is required") {
		t.Fatalf("expected missing flag error, got:\n%s", out)
	}
}
