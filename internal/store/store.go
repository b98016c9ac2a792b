// Package store handles SQLite persistence of the session history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/blindtype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			sample TEXT NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			keystrokes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_letter_stats (
			session_id INTEGER NOT NULL,
			letter TEXT NOT NULL,
			pressed TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (session_id, letter, pressed)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_letter_stats_letter ON session_letter_stats(letter);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished session with its confusion tables. An empty
// rec.UUID is filled with a fresh random UUID.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, letters map[rune]model.LetterStat) (int64, error) {
	if rec.UUID == "" {
		rec.UUID = uuid.New().String()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (uuid, started_at, ended_at, sample, wpm, accuracy, keystrokes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UUID,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Sample,
		rec.WPM,
		rec.Accuracy,
		rec.Keystrokes,
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(letters) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO session_letter_stats (session_id, letter, pressed, count) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() { _ = stmt.Close() }()
		for letter, st := range letters {
			for pressed, count := range st.Presses {
				if _, err = stmt.ExecContext(ctx, id, string(letter), string(pressed), count); err != nil {
					return 0, err
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by the history config,
// oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, uuid, ended_at, wpm, accuracy, keystrokes, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &agg.UUID, &endedAt, &agg.WPM, &agg.Accuracy, &agg.Keystrokes, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// ListLetterAggregates sums presses per expected letter across sessions.
func (s *Store) ListLetterAggregates(ctx context.Context, sessionIDs []int64) ([]model.LetterAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT letter,
		SUM(CASE WHEN pressed = letter THEN count ELSE 0 END) AS correct,
		SUM(count) AS presses
		FROM session_letter_stats
		WHERE session_id IN (%s)
		GROUP BY letter`, strings.Join(placeholders, ","))
	return s.queryLetterAggregates(ctx, query, args...)
}

// GetWeakLetters aggregates letter stats over the most recent sessions.
func (s *Store) GetWeakLetters(ctx context.Context, window int) ([]model.LetterAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ls.letter,
		SUM(CASE WHEN ls.pressed = ls.letter THEN ls.count ELSE 0 END) AS correct,
		SUM(ls.count) AS presses
	FROM session_letter_stats ls
	JOIN recent_sessions r ON r.id = ls.session_id
	GROUP BY ls.letter`
	return s.queryLetterAggregates(ctx, query, window)
}

func (s *Store) queryLetterAggregates(ctx context.Context, query string, args ...any) ([]model.LetterAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []model.LetterAggregate
	for rows.Next() {
		var agg model.LetterAggregate
		if err := rows.Scan(&agg.Letter, &agg.Correct, &agg.Presses); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Clear removes every stored session.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{`DELETE FROM session_letter_stats`, `DELETE FROM sessions`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
