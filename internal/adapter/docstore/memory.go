package docstore

import (
	"context"
	"sync"

	"hydrosync/internal/domain"
)

// Memory is an in-memory store for development and testing.
type Memory struct {
	mu  sync.Mutex
	doc domain.Document
	rev int64
	set bool
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a deep copy of the document, initializing it on first access.
func (m *Memory) Load(ctx context.Context) (domain.Document, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		m.doc = domain.NewDocument()
		m.rev = 1
		m.set = true
	}
	return m.doc.Clone(), m.rev, nil
}

// Save replaces the document when revision matches the stored one.
func (m *Memory) Save(ctx context.Context, doc domain.Document, revision int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.set && revision != m.rev {
		return ErrConflict
	}
	m.doc = doc.Clone()
	m.rev = revision + 1
	m.set = true
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }
