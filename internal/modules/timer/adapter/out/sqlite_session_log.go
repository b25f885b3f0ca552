package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	apperrors "pomo/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteSessionLog struct {
	db *sql.DB
}

func NewSQLiteSessionLog(dbPath string) (timerout.SessionLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	log := &SQLiteSessionLog{db: db}
	if err := log.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *SQLiteSessionLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  mode TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  started_at TEXT NOT NULL,
  started_day TEXT NOT NULL,
  ended_at TEXT,
  completed INTEGER NOT NULL DEFAULT 0,
  xp_earned INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(started_day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionLog) Append(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, mode, duration_seconds, started_at, started_day, ended_at, completed, xp_earned)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	var endedAt any
	if session.EndedAt != nil {
		endedAt = session.EndedAt.Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Mode),
		session.DurationSeconds,
		session.StartedAt.Format(timeLayout),
		session.StartedAt.Format("2006-01-02"),
		endedAt,
		boolToInt(session.Completed),
		session.XPEarned,
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionLog) Complete(ctx context.Context, id string, endedAt time.Time, xpEarned int) error {
	const stmt = `UPDATE sessions SET ended_at = ?, completed = 1, xp_earned = ? WHERE id = ?;`
	result, err := s.db.ExecContext(ctx, stmt, endedAt.Format(timeLayout), xpEarned, id)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionLog) Get(ctx context.Context, id string) (domain.Session, error) {
	const query = `
SELECT id, mode, duration_seconds, started_at, ended_at, completed, xp_earned
FROM sessions WHERE id = ?;
`
	row := s.db.QueryRowContext(ctx, query, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionLog) CompletedOnDay(ctx context.Context, day string) ([]domain.Session, error) {
	const query = `
SELECT id, mode, duration_seconds, started_at, ended_at, completed, xp_earned
FROM sessions
WHERE started_day = ? AND completed = 1
ORDER BY started_at;
`
	rows, err := s.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("query day sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteSessionLog) DayTotals(ctx context.Context, fromDay, toDay string) ([]domain.DayTotal, error) {
	const query = `
SELECT started_day, COUNT(*), COALESCE(SUM(duration_seconds), 0)
FROM sessions
WHERE completed = 1 AND mode IN ('focus', 'custom') AND started_day >= ? AND started_day <= ?
GROUP BY started_day
ORDER BY started_day;
`
	rows, err := s.db.QueryContext(ctx, query, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("query day totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.DayTotal
	for rows.Next() {
		var total domain.DayTotal
		var seconds int
		if err := rows.Scan(&total.Day, &total.Sessions, &seconds); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		total.FocusMinutes = seconds / 60
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

func (s *SQLiteSessionLog) List(ctx context.Context, limit int) ([]domain.Session, error) {
	query := `
SELECT id, mode, duration_seconds, started_at, ended_at, completed, xp_earned
FROM sessions
ORDER BY started_at DESC
`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteSessionLog) ReplaceAll(ctx context.Context, sessions []domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions;`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	const stmt = `
INSERT INTO sessions (id, mode, duration_seconds, started_at, started_day, ended_at, completed, xp_earned)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	for _, session := range sessions {
		var endedAt any
		if session.EndedAt != nil {
			endedAt = session.EndedAt.Format(timeLayout)
		}
		_, err := tx.ExecContext(ctx, stmt,
			session.ID,
			string(session.Mode),
			session.DurationSeconds,
			session.StartedAt.Format(timeLayout),
			session.StartedAt.Format("2006-01-02"),
			endedAt,
			boolToInt(session.Completed),
			session.XPEarned,
		)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", session.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (s *SQLiteSessionLog) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions;`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var session domain.Session
	var mode, startedAt string
	var endedAt sql.NullString
	var completed int
	if err := row.Scan(&session.ID, &mode, &session.DurationSeconds, &startedAt, &endedAt, &completed, &session.XPEarned); err != nil {
		return domain.Session{}, err
	}
	session.Mode = domain.Mode(mode)
	session.Completed = completed != 0
	parsed, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	session.StartedAt = parsed
	if endedAt.Valid {
		ended, err := time.Parse(timeLayout, endedAt.String)
		if err != nil {
			return domain.Session{}, fmt.Errorf("parse ended_at: %w", err)
		}
		session.EndedAt = &ended
	}
	return session, nil
}

func collectSessions(rows *sql.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
