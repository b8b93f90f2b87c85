// Package history records a per-run audit trail of analyses in a local
// SQLite database. Rows are write-only from the engine's point of view:
// nothing here is ever read back into scoring, so every analysis remains a
// pure function of its input.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/triage/internal/scoring"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    strategy    TEXT NOT NULL,
    task_count  INTEGER NOT NULL,
    cycle_count INTEGER NOT NULL,
    error_count INTEGER NOT NULL,
    top_title   TEXT NOT NULL DEFAULT '',
    top_score   REAL NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Run is one recorded analysis.
type Run struct {
	ID         string
	Kind       string // "analyze" or "suggest"
	Strategy   string
	TaskCount  int
	CycleCount int
	ErrorCount int
	TopTitle   string
	TopScore   float64
	CreatedAt  time.Time
}

// Store persists analysis runs in a local SQLite database in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode
// and busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// SQLite only supports a single writer; one connection avoids
	// SQLITE_BUSY contention between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle. Calling Close on a nil Store is a
// no-op, so callers can record history unconditionally.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RecordAnalysis inserts an audit row for a completed analyze call and
// returns the generated run id. Recording on a nil Store is a no-op.
func (s *Store) RecordAnalysis(ctx context.Context, result *scoring.AnalysisResult) (string, error) {
	if s == nil {
		return "", nil
	}
	var topTitle string
	var topScore float64
	if len(result.Tasks) > 0 {
		topTitle = result.Tasks[0].Title
		topScore = result.Tasks[0].PriorityScore
	}
	return s.insert(ctx, Run{
		Kind:       "analyze",
		Strategy:   string(result.StrategyUsed),
		TaskCount:  result.TotalTasks,
		CycleCount: len(result.CircularDependencies),
		ErrorCount: len(result.ValidationErrors),
		TopTitle:   topTitle,
		TopScore:   topScore,
	})
}

// RecordSuggestion inserts an audit row for a completed suggest call and
// returns the generated run id. Recording on a nil Store is a no-op.
func (s *Store) RecordSuggestion(ctx context.Context, result *scoring.SuggestionResult) (string, error) {
	if s == nil {
		return "", nil
	}
	run := Run{
		Kind:      "suggest",
		Strategy:  string(result.StrategyUsed),
		TaskCount: result.TotalTasksAnalyzed,
	}
	if result.Warning != "" {
		run.CycleCount = 1
	}
	if len(result.Suggestions) > 0 {
		run.TopTitle = result.Suggestions[0].Task.Title
		run.TopScore = result.Suggestions[0].PriorityScore
	}
	return s.insert(ctx, run)
}

func (s *Store) insert(ctx context.Context, run Run) (string, error) {
	run.ID = uuid.NewString()
	const q = `
		INSERT INTO runs (id, kind, strategy, task_count, cycle_count, error_count, top_title, top_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q,
		run.ID, run.Kind, run.Strategy, run.TaskCount,
		run.CycleCount, run.ErrorCount, run.TopTitle, run.TopScore); err != nil {
		return "", fmt.Errorf("history: record %s run: %w", run.Kind, err)
	}
	return run.ID, nil
}

// RecentRuns returns up to limit most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}
	const q = `
		SELECT id, kind, strategy, task_count, cycle_count, error_count, top_title, top_score, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Strategy, &r.TaskCount,
			&r.CycleCount, &r.ErrorCount, &r.TopTitle, &r.TopScore, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
