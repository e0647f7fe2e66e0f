package domain

import "errors"

var (
	// ErrDuplicateUsername indicates that the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrUserNotFound indicates that no account matches the given identity.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates that the stored credential did not match.
	ErrInvalidCredentials = errors.New("incorrect password")
	// ErrInvalidAmount indicates a non-positive drink amount.
	ErrInvalidAmount = errors.New("drink amount must be positive")
)
