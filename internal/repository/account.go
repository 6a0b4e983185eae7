package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/weddingwander/weddingwander/internal/database"
	"github.com/weddingwander/weddingwander/internal/model"
)

// AccountRepository handles persistence for accounts and the current session.
type AccountRepository struct {
	store database.Store
}

// NewAccountRepository constructs an AccountRepository.
func NewAccountRepository(store database.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// List returns every account.
func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := database.ReadCollection[model.Account](ctx, r.store, database.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// GetByID returns a single account or ErrNotFound.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail returns the account with the given email, compared
// case-insensitively, or ErrNotFound.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if strings.EqualFold(accounts[i].Email, email) {
			return &accounts[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends an account. Uniqueness is the caller's responsibility.
func (r *AccountRepository) Create(ctx context.Context, account model.Account) error {
	accounts, err := r.List(ctx)
	if err != nil {
		return err
	}
	accounts = append(accounts, account)
	if err := database.WriteCollection(ctx, r.store, database.CollectionUsers, accounts); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// SetCurrent records account as the logged-in account.
func (r *AccountRepository) SetCurrent(ctx context.Context, account model.Account) error {
	if err := database.WriteDocument(ctx, r.store, database.KeySession, account); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Current returns the logged-in account, or nil when nobody is logged in.
func (r *AccountRepository) Current(ctx context.Context) (*model.Account, error) {
	account, ok, err := database.ReadDocument[model.Account](ctx, r.store, database.KeySession)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &account, nil
}

// ClearCurrent forgets the logged-in account.
func (r *AccountRepository) ClearCurrent(ctx context.Context) error {
	if err := r.store.Remove(ctx, database.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
