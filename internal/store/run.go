package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var runMigrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		site TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		links INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
}

// Runs older than 90 days are dropped each time the store is opened.
var repeatableRunMigrations = []string{
	`DELETE FROM runs WHERE started_at < (CAST(strftime('%s', 'now') AS INTEGER) - 7776000) * 1000;`,
}

// Run summarizes one validation run.
type Run struct {
	ID         string
	Site       string
	StartedAt  time.Time
	FinishedAt time.Time
	Links      int
	Errors     int
	Warnings   int
}

func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func NewRunID() string {
	return xid.New().String()
}

func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}

	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `
			INSERT INTO runs (id, site, started_at, finished_at, links, errors, warnings) VALUES (?, ?, ?, ?, ?, ?, ?)
		`, &sqlitex.ExecOptions{
			Args: []any{
				run.ID, run.Site,
				run.StartedAt.UTC().UnixMilli(), run.FinishedAt.UTC().UnixMilli(),
				int64(run.Links), int64(run.Errors), int64(run.Warnings),
			},
		}))
	})
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	runs := make([]*Run, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM runs ORDER BY started_at DESC, id DESC LIMIT ?", runAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{int64(limit)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				runs = append(runs, bindRun(stmt))
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return runs, nil
}

var runAttributes = `id, site, started_at, finished_at, links, errors, warnings`

func bindRun(stmt *sqlite.Stmt) *Run {
	return &Run{
		ID:         stmt.ColumnText(0),
		Site:       stmt.ColumnText(1),
		StartedAt:  time.UnixMilli(stmt.ColumnInt64(2)),
		FinishedAt: time.UnixMilli(stmt.ColumnInt64(3)),
		Links:      int(stmt.ColumnInt64(4)),
		Errors:     int(stmt.ColumnInt64(5)),
		Warnings:   int(stmt.ColumnInt64(6)),
	}
}
