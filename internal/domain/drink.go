package domain

import (
	"context"
	"time"
)

// DrinkEntry is one recorded instance of consuming a specific amount at a
// specific instant. Entries are immutable once written.
type DrinkEntry struct {
	AmountMl  int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// DrinkLogRepository is the port for the append-only per-user drink log.
type DrinkLogRepository interface {
	// Append adds an entry to the user's log, creating the log if needed.
	// Fails with ErrInvalidAmount when amountMl <= 0.
	Append(ctx context.Context, userID string, amountMl int, at time.Time) (*DrinkEntry, error)
	// List returns all entries for the user in insertion order. Users with
	// no history get an empty slice.
	List(ctx context.Context, userID string) ([]DrinkEntry, error)
	// Clear replaces the user's log with an empty one. Unrecoverable.
	Clear(ctx context.Context, userID string) error
}
