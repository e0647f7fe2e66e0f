// Package docstore provides durable keyed storage for the hydration
// document: one structured value, read and written as a whole.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"hydrosync/internal/domain"
)

// ErrConflict is returned by Save when the stored revision moved since the
// matching Load, so a concurrent writer cannot silently lose an update.
var ErrConflict = errors.New("document revision conflict")

// Store is the port for document persistence. Load lazily initializes an
// empty document on first access and returns its revision token; Save only
// succeeds when given the revision the caller loaded.
type Store interface {
	Load(ctx context.Context) (domain.Document, int64, error)
	Save(ctx context.Context, doc domain.Document, revision int64) error
	Close() error
}

const updateRetries = 5

// Update runs a read-modify-write cycle against the store, retrying a
// bounded number of times on revision conflicts.
func Update(ctx context.Context, s Store, fn func(doc *domain.Document) error) error {
	var lastErr error
	for i := 0; i < updateRetries; i++ {
		doc, rev, err := s.Load(ctx)
		if err != nil {
			return err
		}
		if err := fn(&doc); err != nil {
			return err
		}
		lastErr = s.Save(ctx, doc, rev)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ErrConflict) {
			return lastErr
		}
	}
	return fmt.Errorf("update document: %w", lastErr)
}
