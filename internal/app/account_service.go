// Package app holds the application services and business logic.
package app

import (
	"context"

	"hydrosync/internal/domain"
	"hydrosync/internal/metrics"
)

// AccountService handles registration, login and goal management.
type AccountService struct {
	accounts domain.AccountRepository
	verifier CredentialVerifier
}

// NewAccountService creates an AccountService backed by the given
// repository and credential verifier.
func NewAccountService(accounts domain.AccountRepository, verifier CredentialVerifier) *AccountService {
	return &AccountService{accounts: accounts, verifier: verifier}
}

// Register creates a new account. Fails with domain.ErrDuplicateUsername
// when the username is taken. Length constraints on username and password
// are the caller's responsibility.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := s.accounts.Create(ctx, username, stored)
	if err != nil {
		return nil, err
	}
	metrics.Registrations.Inc()
	return user, nil
}

// Login authenticates by exact credential match. Fails with
// domain.ErrUserNotFound when no such username exists and
// domain.ErrInvalidCredentials when the credential check fails.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !s.verifier.Verify(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// SetGoal updates the daily goal; unknown ids are a silent no-op.
func (s *AccountService) SetGoal(ctx context.Context, userID string, goalMl int) error {
	return s.accounts.SetGoal(ctx, userID, goalMl)
}

// GetUser returns the account for id, or domain.ErrUserNotFound.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
