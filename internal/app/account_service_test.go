package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"hydrosync/internal/domain"
)

type mockAccountRepo struct {
	createFn        func(ctx context.Context, username, password string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	setGoalFn       func(ctx context.Context, id string, goalMl int) error
	saveTumblerFn   func(ctx context.Context, id string, volumeMl int) error
}

func (m *mockAccountRepo) Create(ctx context.Context, username, password string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, password)
	}
	return &domain.User{ID: "USR-1", Username: username, Password: password, CreatedAt: time.Now()}, nil
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) SetGoal(ctx context.Context, id string, goalMl int) error {
	if m.setGoalFn != nil {
		return m.setGoalFn(ctx, id, goalMl)
	}
	return nil
}

func (m *mockAccountRepo) SaveTumbler(ctx context.Context, id string, volumeMl int) error {
	if m.saveTumblerFn != nil {
		return m.saveTumblerFn(ctx, id, volumeMl)
	}
	return nil
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if password != "secret99" {
				t.Errorf("plain verifier must store the password verbatim, got %q", password)
			}
			return &domain.User{ID: "USR-1", Username: username, Password: password}, nil
		},
	}
	svc := NewAccountService(repo, PlainVerifier{})

	user, err := svc.Register(ctx, "sam", "secret99")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != "USR-1" || user.Username != "sam" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	}
	svc := NewAccountService(repo, PlainVerifier{})

	_, err := svc.Register(context.Background(), "sam", "secret99")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAccountService_Login_RoundTrip(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: "USR-1", Username: "sam", Password: "secret99"}
	repo := &mockAccountRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "sam" {
				cp := *stored
				return &cp, nil
			}
			return nil, nil
		},
	}
	svc := NewAccountService(repo, PlainVerifier{})

	user, err := svc.Login(ctx, "sam", "secret99")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != stored.ID || user.Username != stored.Username {
		t.Fatalf("login returned a different identity: %+v", user)
	}
}

func TestAccountService_Login_UserNotFound(t *testing.T) {
	svc := NewAccountService(&mockAccountRepo{}, PlainVerifier{})

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	repo := &mockAccountRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "USR-1", Username: "sam", Password: "secret99"}, nil
		},
	}
	svc := NewAccountService(repo, PlainVerifier{})

	_, err := svc.Login(context.Background(), "sam", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_BcryptVerifier(t *testing.T) {
	ctx := context.Background()
	var storedHash string
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			storedHash = password
			return &domain.User{ID: "USR-1", Username: username, Password: password}, nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "USR-1", Username: username, Password: storedHash}, nil
		},
	}
	svc := NewAccountService(repo, BcryptVerifier{})

	if _, err := svc.Register(ctx, "sam", "secret99"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if storedHash == "secret99" {
		t.Fatal("bcrypt verifier must not store the password verbatim")
	}
	if _, err := svc.Login(ctx, "sam", "secret99"); err != nil {
		t.Fatalf("login with correct password: %v", err)
	}
	if _, err := svc.Login(ctx, "sam", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_SetGoal_UnknownUserIsNoOp(t *testing.T) {
	called := false
	repo := &mockAccountRepo{
		setGoalFn: func(ctx context.Context, id string, goalMl int) error {
			called = true
			return nil
		},
	}
	svc := NewAccountService(repo, PlainVerifier{})

	if err := svc.SetGoal(context.Background(), "USR-missing", 2000); err != nil {
		t.Fatalf("set goal must soft-fail, got %v", err)
	}
	if !called {
		t.Fatal("expected repository delegation")
	}
}

func TestGoalForAge(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{17, 1800},
		{18, 2000},
		{26, 2000},
		{27, 2500},
		{50, 2500},
		{51, 2200},
	}
	for _, tc := range tests {
		if got := GoalForAge(tc.age); got != tc.want {
			t.Errorf("GoalForAge(%d) = %d, want %d", tc.age, got, tc.want)
		}
	}
}
