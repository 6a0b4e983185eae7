package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/weddingwander/weddingwander/internal/model"
	"github.com/weddingwander/weddingwander/internal/repository"
)

// Identity manages accounts and the current session. Secrets are stored and
// compared verbatim.
type Identity struct {
	mu       sync.Mutex
	accounts *repository.AccountRepository
}

// NewIdentity constructs an Identity service.
func NewIdentity(accounts *repository.AccountRepository) *Identity {
	return &Identity{accounts: accounts}
}

// Signup creates an account and logs it in.
func (s *Identity) Signup(ctx context.Context, req model.SignupRequest) (*model.Account, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.accounts.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, ErrAccountExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	account := model.Account{
		ID:       "user-" + uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	if err := s.accounts.SetCurrent(ctx, account); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": account.ID}).Info("account created")
	return &account, nil
}

// Login checks the credentials and records the account as logged in.
func (s *Identity) Login(ctx context.Context, req model.LoginRequest) (*model.Account, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account.Password != req.Password {
		return nil, ErrInvalidCredentials
	}
	if err := s.accounts.SetCurrent(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// Current returns the logged-in account, or nil when nobody is logged in.
func (s *Identity) Current(ctx context.Context) (*model.Account, error) {
	return s.accounts.Current(ctx)
}

// Logout forgets the logged-in account.
func (s *Identity) Logout(ctx context.Context) error {
	return s.accounts.ClearCurrent(ctx)
}

// Account looks an account up by ID.
func (s *Identity) Account(ctx context.Context, id string) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
