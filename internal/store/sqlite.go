package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/fleet-cli/internal/fleet"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	trucks     INTEGER NOT NULL,
	summary    TEXT NOT NULL,
	report     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS decisions (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	unit_id   TEXT NOT NULL,
	action    TEXT NOT NULL,
	net_equity REAL NOT NULL,
	cpm       REAL NOT NULL,
	reasoning TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_decisions_run_id ON decisions(run_id);
CREATE INDEX IF NOT EXISTS idx_decisions_action ON decisions(action);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, report *fleet.Report) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Trucks:    len(report.Records),
		Summary:   fleet.Summarize(report.Records),
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}

	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal summary")
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal report")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, trucks, summary, report, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Trucks, string(summaryJSON), string(reportJSON), run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	for _, rec := range report.Records {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO decisions (run_id, unit_id, action, net_equity, cpm, reasoning) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, rec.UnitID, string(rec.Action), rec.NetEquity, rec.CPM, rec.Reasoning,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert decision %s", rec.UnitID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit")
	}
	return run, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, trucks, summary, report, created_at FROM runs WHERE id = ?`,
		runID,
	)

	var run Run
	var summaryJSON, reportJSON string
	if err := row.Scan(&run.ID, &run.Trucks, &summaryJSON, &reportJSON, &run.CreatedAt); err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal summary")
	}
	if err := json.Unmarshal([]byte(reportJSON), &run.Report); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &run, nil
}

// ListRuns returns the most recent runs without their full reports.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trucks, summary, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var run Run
		var summaryJSON string
		if err := rows.Scan(&run.ID, &run.Trucks, &summaryJSON, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal summary")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}
