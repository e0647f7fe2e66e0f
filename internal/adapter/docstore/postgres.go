package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"hydrosync/internal/domain"
)

// Postgres stores the document as a single JSONB row keyed by the storage
// key, with a revision column for optimistic concurrency.
type Postgres struct {
	sql *sql.DB
	key string
}

var _ Store = (*Postgres)(nil)

// OpenPostgres connects, pings and runs migrations.
func OpenPostgres(connStr, key string) (*Postgres, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	p := &Postgres{sql: s, key: key}
	if err := p.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return p, nil
}

// Close closes the underlying database connection.
func (p *Postgres) Close() error {
	return p.sql.Close()
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.sql.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS documents (key TEXT PRIMARY KEY, revision BIGINT NOT NULL, data JSONB NOT NULL);")
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Load returns the document for the store key, inserting the empty
// first-run document when the key is absent.
func (p *Postgres) Load(ctx context.Context) (domain.Document, int64, error) {
	if err := p.ensure(ctx); err != nil {
		return domain.Document{}, 0, err
	}

	var (
		rev  int64
		data []byte
	)
	err := p.sql.QueryRowContext(ctx,
		"SELECT revision, data FROM documents WHERE key = $1;", p.key,
	).Scan(&rev, &data)
	if err != nil {
		return domain.Document{}, 0, err
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, 0, fmt.Errorf("decode document: %w", err)
	}
	if doc.History == nil {
		doc.History = map[string][]domain.DrinkEntry{}
	}
	return doc, rev, nil
}

// Save writes the document back, failing with ErrConflict when the stored
// revision no longer matches.
func (p *Postgres) Save(ctx context.Context, doc domain.Document, revision int64) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	res, err := p.sql.ExecContext(ctx,
		"UPDATE documents SET data = $1, revision = revision + 1 WHERE key = $2 AND revision = $3;",
		data, p.key, revision)
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

func (p *Postgres) ensure(ctx context.Context) error {
	data, err := json.Marshal(domain.NewDocument())
	if err != nil {
		return err
	}
	_, err = p.sql.ExecContext(ctx,
		"INSERT INTO documents (key, revision, data) VALUES ($1, 1, $2) ON CONFLICT (key) DO NOTHING;",
		p.key, data)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		// Raced another first-run writer; the row exists now.
		return nil
	}
	return err
}
