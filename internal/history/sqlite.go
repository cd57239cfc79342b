package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hcalazans/autovoz/internal/models"
)

// SQLiteStore keeps the analysis history in a local SQLite file. It also
// carries the curated technical summaries (advantages/disadvantages per
// model), so it doubles as a techsummary provider in local setups.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) the history database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS summaries (
	id TEXT PRIMARY KEY,
	model TEXT NOT NULL,
	synthesis TEXT NOT NULL,
	distribution TEXT NOT NULL,
	generated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_summaries_generated_at ON summaries(generated_at DESC);

CREATE TABLE IF NOT EXISTS technical_summaries (
	model TEXT PRIMARY KEY COLLATE NOCASE,
	advantages TEXT NOT NULL,
	disadvantages TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AppendSummary inserts one immutable history row. The row is never
// updated or deleted afterwards.
func (s *SQLiteStore) AppendSummary(ctx context.Context, summary models.AnalysisSummary) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO summaries (id, model, synthesis, distribution, generated_at)
VALUES (?, ?, ?, ?, ?)`,
		summary.ID, summary.Model, summary.Synthesis, summary.Distribution,
		summary.GeneratedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append summary: %w", err)
	}
	return nil
}

// FetchHistory returns the newest rows first, capped at limit.
func (s *SQLiteStore) FetchHistory(ctx context.Context, limit int) ([]models.AnalysisSummary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, model, synthesis, distribution, generated_at
FROM summaries
ORDER BY generated_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer rows.Close()

	var summaries []models.AnalysisSummary
	for rows.Next() {
		var s models.AnalysisSummary
		var generatedAt string
		if err := rows.Scan(&s.ID, &s.Model, &s.Synthesis, &s.Distribution, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse generated_at %q: %w", generatedAt, err)
		}
		s.GeneratedAt = ts
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// LookupProsCons reads the curated technical summary for a model,
// case-insensitively. Absent entries come back as N/A, never as an error.
func (s *SQLiteStore) LookupProsCons(ctx context.Context, model string) models.TechnicalSummary {
	var ts models.TechnicalSummary
	err := s.db.QueryRowContext(ctx, `
SELECT advantages, disadvantages FROM technical_summaries WHERE model = ?`, model).
		Scan(&ts.Advantages, &ts.Disadvantages)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("[SQLiteStore] Technical summary lookup failed",
				slog.String("model", model),
				slog.String("error", err.Error()))
		}
		return models.UnknownTechnicalSummary()
	}
	return ts
}

// SaveProsCons upserts a curated technical summary. Used by seeding tools
// and tests; the analysis run itself only reads.
func (s *SQLiteStore) SaveProsCons(ctx context.Context, model string, ts models.TechnicalSummary) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO technical_summaries (model, advantages, disadvantages)
VALUES (?, ?, ?)
ON CONFLICT(model) DO UPDATE SET advantages = excluded.advantages, disadvantages = excluded.disadvantages`,
		model, ts.Advantages, ts.Disadvantages)
	return err
}
