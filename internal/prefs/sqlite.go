// SPDX-License-Identifier: MIT

package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ManuGH/folio/internal/persistence/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	PRIMARY KEY (namespace, key)
);`

// SQLiteStore keeps preferences in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the preference database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlite.Open(path, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prefs: migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE namespace = ? AND key = ?`, namespace, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("prefs: get %s/%s: %w", namespace, key, err)
	}
	return v, nil
}

func (s *SQLiteStore) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO preferences (namespace, key, value)
VALUES (?, ?, ?)
ON CONFLICT (namespace, key) DO UPDATE SET
	value = excluded.value,
	updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		namespace, key, value)
	if err != nil {
		return fmt.Errorf("prefs: set %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE namespace = ? AND key = ?`, namespace, key)
	if err != nil {
		return fmt.Errorf("prefs: delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return sqlite.QuickCheck(ctx, s.db)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
