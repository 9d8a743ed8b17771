package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS sweep_reports (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    kind TEXT NOT NULL,
    seeds INTEGER NOT NULL,
    duration DOUBLE PRECISION NOT NULL,
    dt DOUBLE PRECISION NOT NULL,
    scenario_count INTEGER NOT NULL,
    top_score DOUBLE PRECISION NOT NULL,
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sweep_reports_created_at ON sweep_reports(created_at DESC);
`

// PostgresStore implements ReportStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Save inserts a new report.
func (s *PostgresStore) Save(ctx context.Context, report *Report) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sweep_reports (id, label, kind, seeds, duration, dt, scenario_count, top_score, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		report.ID, report.Label, report.Kind, report.Seeds, report.Duration, report.DT,
		report.ScenarioCount, report.TopScore, report.Payload, report.CreatedAt)
	return err
}

// FindByID looks up a report by ID.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Report, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, label, kind, seeds, duration, dt, scenario_count, top_score, payload, created_at
		 FROM sweep_reports WHERE id = $1`, id)

	report, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return report, err
}

// ListRecent returns up to limit reports, newest first.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, label, kind, seeds, duration, dt, scenario_count, top_score, payload, created_at
		 FROM sweep_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanReport(row pgx.Row) (*Report, error) {
	var report Report
	err := row.Scan(&report.ID, &report.Label, &report.Kind, &report.Seeds, &report.Duration,
		&report.DT, &report.ScenarioCount, &report.TopScore, &report.Payload, &report.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
