package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	for _, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, sessionID, role, content, model string) error {
	var modelCol *string
	if model != "" {
		modelCol = &model
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_history (session_id, role, content, model) VALUES (?, ?, ?, ?)`,
		sessionID, role, content, modelCol,
	)
	return err
}

// ReadAll returns every record for the session ordered ascending by
// created_at, with the insert id as tiebreak for turns stored within the
// same timestamp granularity.
func (s *SQLiteStore) ReadAll(ctx context.Context, sessionID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, model, created_at FROM chat_history
		 WHERE session_id = ? ORDER BY created_at ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var model sql.NullString

		if err := rows.Scan(&rec.Role, &rec.Content, &model, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if model.Valid {
			rec.Model = model.String
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *SQLiteStore) DeleteAll(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_history WHERE session_id = ?`,
		sessionID,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
