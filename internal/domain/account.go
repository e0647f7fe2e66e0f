// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User represents a registered account.
//
// Password holds whatever the configured credential verifier produced at
// registration time; with the plaintext verifier it is the password itself.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Password        string    `json:"password"`
	CreatedAt       time.Time `json:"createdAt"`
	DailyGoalMl     int       `json:"dailyGoal,omitempty"`
	TumblerVolumeMl *int      `json:"tumblerVolume,omitempty"`
}

// AccountRepository defines the port for account persistence operations.
// Lookups return nil without an error when no account matches, and every
// returned User is a copy detached from repository-internal state.
type AccountRepository interface {
	Create(ctx context.Context, username, password string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// SetGoal updates the daily goal. Unknown ids are a silent no-op.
	SetGoal(ctx context.Context, id string, goalMl int) error
	// SaveTumbler writes back the tumbler volume after a state transition.
	// Unknown ids are a silent no-op.
	SaveTumbler(ctx context.Context, id string, volumeMl int) error
}
