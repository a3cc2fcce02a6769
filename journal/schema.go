// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	source TEXT NOT NULL,
	scenario TEXT NOT NULL,
	multiplier REAL NOT NULL,
	loans INTEGER NOT NULL,
	excluded INTEGER NOT NULL,
	exposure REAL NOT NULL,
	rwa REAL NOT NULL,
	el REAL NOT NULL,
	weighted_pd REAL,
	tier1_capital REAL NOT NULL,
	total_capital REAL NOT NULL,
	capital_with_buffer REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS run_loans (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	loan_id TEXT NOT NULL,
	category TEXT NOT NULL,
	base_pd REAL NOT NULL,
	pd REAL NOT NULL,
	lgd REAL NOT NULL,
	ead REAL NOT NULL,
	risk_weight REAL NOT NULL,
	el REAL NOT NULL,
	rwa REAL NOT NULL,
	PRIMARY KEY (run_id, loan_id)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
