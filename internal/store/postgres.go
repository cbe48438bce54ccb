package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/fleet-cli/internal/db"
	"github.com/sells-group/fleet-cli/internal/fleet"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	trucks     INTEGER NOT NULL,
	summary    JSONB NOT NULL,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS decisions (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	unit_id    TEXT NOT NULL,
	action     TEXT NOT NULL,
	net_equity DOUBLE PRECISION NOT NULL,
	cpm        DOUBLE PRECISION NOT NULL,
	reasoning  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_decisions_run_id ON decisions(run_id);
CREATE INDEX IF NOT EXISTS idx_decisions_action ON decisions(action);
`

// decisionColumns is the COPY column order for bulk decision inserts.
var decisionColumns = []string{"run_id", "unit_id", "action", "net_equity", "cpm", "reasoning"}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, report *fleet.Report) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Trucks:    len(report.Records),
		Summary:   fleet.Summarize(report.Records),
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}

	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal summary")
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, trucks, summary, report, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Trucks, summaryJSON, reportJSON, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	rows := make([][]any, 0, len(report.Records))
	for _, rec := range report.Records {
		rows = append(rows, []any{run.ID, rec.UnitID, string(rec.Action), rec.NetEquity, rec.CPM, rec.Reasoning})
	}
	if _, err := db.CopyFrom(ctx, s.pool, "decisions", decisionColumns, rows); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, trucks, summary, report, created_at FROM runs WHERE id = $1`,
		runID,
	)

	var run Run
	var summaryJSON, reportJSON []byte
	if err := row.Scan(&run.ID, &run.Trucks, &summaryJSON, &reportJSON, &run.CreatedAt); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(err, "postgres: get run %s: not found", runID)
		}
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	if err := json.Unmarshal(summaryJSON, &run.Summary); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal summary")
	}
	if err := json.Unmarshal(reportJSON, &run.Report); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &run, nil
}

// ListRuns returns the most recent runs without their full reports.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, trucks, summary, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var summaryJSON []byte
		if err := rows.Scan(&run.ID, &run.Trucks, &summaryJSON, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		if err := json.Unmarshal(summaryJSON, &run.Summary); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal summary")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
