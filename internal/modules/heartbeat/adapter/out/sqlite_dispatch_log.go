package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/domain"
	heartbeatout "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/out"
)

// SQLiteDispatchLog keeps an append-only record of dispatch outcomes for
// the log command and the TUI. It is diagnostics only: failed heartbeats
// are never replayed from here.
type SQLiteDispatchLog struct {
	db *sql.DB
}

func NewSQLiteDispatchLog(dbPath string) (heartbeatout.DispatchLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	log := &SQLiteDispatchLog{db: db}
	if err := log.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return log, nil
}

func (l *SQLiteDispatchLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS dispatches (
  id TEXT PRIMARY KEY,
  at TEXT NOT NULL,
  entity TEXT NOT NULL,
  project TEXT NOT NULL,
  status_code INTEGER NOT NULL,
  error TEXT NOT NULL DEFAULT ''
);
`
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create dispatches table: %w", err)
	}
	return nil
}

func (l *SQLiteDispatchLog) Record(ctx context.Context, outcome domain.Outcome) error {
	const stmt = `
INSERT INTO dispatches (id, at, entity, project, status_code, error)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := l.db.ExecContext(ctx, stmt,
		outcome.ID,
		outcome.At.Format(time.RFC3339Nano),
		outcome.Entity,
		outcome.Project,
		outcome.StatusCode,
		outcome.Err,
	)
	if err != nil {
		return fmt.Errorf("insert dispatch outcome: %w", err)
	}
	return nil
}

func (l *SQLiteDispatchLog) Tail(ctx context.Context, limit int) ([]domain.Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT id, at, entity, project, status_code, error
FROM dispatches ORDER BY at DESC LIMIT ?;
`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query dispatch outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Outcome{}
	for rows.Next() {
		var o domain.Outcome
		var at string
		if err := rows.Scan(&o.ID, &at, &o.Entity, &o.Project, &o.StatusCode, &o.Err); err != nil {
			return nil, fmt.Errorf("scan dispatch outcome: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse dispatch time: %w", err)
		}
		o.At = parsed
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispatch outcomes: %w", err)
	}
	return out, nil
}
