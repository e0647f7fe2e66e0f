package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"hydrosync/internal/domain"
)

// SQLite stores the document in a local SQLite file, the single-binary
// analog of the browser-local storage the document model comes from.
type SQLite struct {
	sql *sql.DB
	key string
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database file and migrates.
func OpenSQLite(path, key string) (*SQLite, error) {
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The driver serializes writes; one connection avoids lock contention.
	s.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := s.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS documents (key TEXT PRIMARY KEY, revision INTEGER NOT NULL, data TEXT NOT NULL);"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{sql: s, key: key}, nil
}

// Close closes the underlying database connection.
func (l *SQLite) Close() error {
	return l.sql.Close()
}

// Load returns the document for the store key, inserting the empty
// first-run document when the key is absent.
func (l *SQLite) Load(ctx context.Context) (domain.Document, int64, error) {
	empty, err := json.Marshal(domain.NewDocument())
	if err != nil {
		return domain.Document{}, 0, err
	}
	if _, err := l.sql.ExecContext(ctx,
		"INSERT OR IGNORE INTO documents (key, revision, data) VALUES (?, 1, ?);",
		l.key, string(empty)); err != nil {
		return domain.Document{}, 0, err
	}

	var (
		rev  int64
		data string
	)
	err = l.sql.QueryRowContext(ctx,
		"SELECT revision, data FROM documents WHERE key = ?;", l.key,
	).Scan(&rev, &data)
	if err != nil {
		return domain.Document{}, 0, err
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return domain.Document{}, 0, fmt.Errorf("decode document: %w", err)
	}
	if doc.History == nil {
		doc.History = map[string][]domain.DrinkEntry{}
	}
	return doc, rev, nil
}

// Save writes the document back, failing with ErrConflict when the stored
// revision no longer matches.
func (l *SQLite) Save(ctx context.Context, doc domain.Document, revision int64) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	res, err := l.sql.ExecContext(ctx,
		"UPDATE documents SET data = ?, revision = revision + 1 WHERE key = ? AND revision = ?;",
		string(data), l.key, revision)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
