// Package document implements the domain repositories on top of a document
// store: every operation is a whole-document read-modify-write guarded by
// the store's revision token.
package document

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hydrosync/internal/adapter/docstore"
	"hydrosync/internal/domain"
)

// Repository implements both account and drink-log persistence over one
// shared document.
type Repository struct {
	store docstore.Store
}

var _ domain.AccountRepository = (*Repository)(nil)
var _ domain.DrinkLogRepository = (*Repository)(nil)

// New creates a Repository backed by the given store.
func New(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// newAccountID generates a fresh opaque account id.
func newAccountID() string {
	return "USR-" + uuid.NewString()
}

// --- AccountRepository ---

// Create registers a new account with an empty drink log.
func (r *Repository) Create(ctx context.Context, username, password string) (*domain.User, error) {
	var created domain.User
	err := docstore.Update(ctx, r.store, func(doc *domain.Document) error {
		if doc.FindUserByName(username) != nil {
			return domain.ErrDuplicateUsername
		}
		u := domain.User{
			ID:        newAccountID(),
			Username:  username,
			Password:  password,
			CreatedAt: time.Now().UTC(),
		}
		doc.Users = append(doc.Users, u)
		doc.History[u.ID] = []domain.DrinkEntry{}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByUsername retrieves an account by username. Missing accounts return
// nil without an error.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	doc, _, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if u := doc.FindUserByName(username); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// GetByID retrieves an account by id. Missing accounts return nil without
// an error.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, _, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if u := doc.FindUser(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// SetGoal updates the daily goal, silently ignoring unknown ids.
func (r *Repository) SetGoal(ctx context.Context, id string, goalMl int) error {
	return docstore.Update(ctx, r.store, func(doc *domain.Document) error {
		if u := doc.FindUser(id); u != nil {
			u.DailyGoalMl = goalMl
		}
		return nil
	})
}

// SaveTumbler persists the tumbler volume, silently ignoring unknown ids.
func (r *Repository) SaveTumbler(ctx context.Context, id string, volumeMl int) error {
	return docstore.Update(ctx, r.store, func(doc *domain.Document) error {
		if u := doc.FindUser(id); u != nil {
			v := volumeMl
			u.TumblerVolumeMl = &v
		}
		return nil
	})
}

// --- DrinkLogRepository ---

// Append adds an entry to the user's log, creating the log if needed.
func (r *Repository) Append(ctx context.Context, userID string, amountMl int, at time.Time) (*domain.DrinkEntry, error) {
	if amountMl <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	entry := domain.DrinkEntry{AmountMl: amountMl, Timestamp: at.UTC()}
	err := docstore.Update(ctx, r.store, func(doc *domain.Document) error {
		doc.History[userID] = append(doc.History[userID], entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all entries for the user in insertion order.
func (r *Repository) List(ctx context.Context, userID string) ([]domain.DrinkEntry, error) {
	doc, _, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := doc.History[userID]
	if entries == nil {
		return []domain.DrinkEntry{}, nil
	}
	return entries, nil
}

// Clear replaces the user's log with an empty one.
func (r *Repository) Clear(ctx context.Context, userID string) error {
	return docstore.Update(ctx, r.store, func(doc *domain.Document) error {
		doc.History[userID] = []domain.DrinkEntry{}
		return nil
	})
}
