package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var linkResultMigrations = []string{
	`CREATE TABLE IF NOT EXISTS link_results (
		url TEXT PRIMARY KEY,
		status INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		checked_at INTEGER NOT NULL
	);`,
}

// LinkResult is the outcome of a remote URL check.
type LinkResult struct {
	URL       string
	Status    int
	Error     string
	CheckedAt time.Time
}

// GetLinkResult returns the stored result for url if it was checked less than maxAge ago.
// It returns nil when no fresh result exists.
func (s *Store) GetLinkResult(ctx context.Context, url string, maxAge time.Duration) (*LinkResult, error) {
	var result *LinkResult

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		minCheckedAt := time.Now().UTC().Add(-maxAge).Unix()

		return errors.WithStack(sqlitex.Execute(conn, `SELECT url, status, error, checked_at FROM link_results WHERE url = ? AND checked_at >= ? LIMIT 1`, &sqlitex.ExecOptions{
			Args: []any{url, minCheckedAt},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				result = &LinkResult{
					URL:       stmt.ColumnText(0),
					Status:    int(stmt.ColumnInt64(1)),
					Error:     stmt.ColumnText(2),
					CheckedAt: time.Unix(stmt.ColumnInt64(3), 0),
				}
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}

func (s *Store) SaveLinkResult(ctx context.Context, result *LinkResult) error {
	checkedAt := result.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `
			INSERT INTO link_results (url, status, error, checked_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET status = excluded.status, error = excluded.error, checked_at = excluded.checked_at
		`, &sqlitex.ExecOptions{
			Args: []any{result.URL, int64(result.Status), result.Error, checkedAt.UTC().Unix()},
		}))
	})
}

// PurgeLinkResults deletes results older than maxAge and returns how many were removed.
func (s *Store) PurgeLinkResults(ctx context.Context, maxAge time.Duration) (int, error) {
	var deleted int

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM link_results WHERE checked_at < ?`, &sqlitex.ExecOptions{
			Args: []any{time.Now().UTC().Add(-maxAge).Unix()},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		deleted = conn.Changes()

		return nil
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return deleted, nil
}
