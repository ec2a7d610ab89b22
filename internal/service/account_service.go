package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gsdgroup/billing/internal/dto"
	"github.com/gsdgroup/billing/internal/models"
	"github.com/gsdgroup/billing/internal/storage"
	"github.com/gsdgroup/billing/internal/validate"
)

// AccountService manages Account aggregates.
type AccountService struct {
	store storage.Store
	now   func() time.Time
}

// NewAccountService creates a new AccountService with the given storage backend.
func NewAccountService(store storage.Store) *AccountService {
	return &AccountService{store: store, now: time.Now}
}

// validAccount checks the account and every bill it owns.
func validAccount(account *models.Account) bool {
	account.Link()
	if !validate.ValidateAccount(account) {
		return false
	}
	for _, bill := range account.Bills {
		if !validate.ValidateBill(bill) {
			return false
		}
	}
	return true
}

// AddAccount validates and stores a new account with everything it owns.
// It returns the generated account ID.
func (s *AccountService) AddAccount(ctx context.Context, account *models.Account) (int64, error) {
	if account == nil {
		logFailure("AddAccount", ErrNullAccount)
		return 0, ErrNullAccount
	}

	slog.Info("AddAccount request received",
		"first_name", account.FirstName,
		"last_name", account.LastName,
		"bills_count", len(account.Bills),
	)

	if !validAccount(account) {
		logFailure("AddAccount", ErrInvalidAccount)
		return 0, ErrInvalidAccount
	}

	var id int64
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		id, err = q.AddAccount(ctx, account)
		if err != nil {
			return fmt.Errorf("failed to add account: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("AddAccount", err)
		return 0, err
	}

	slog.Info("Account created", "account_id", id)
	return id, nil
}

// DeleteAccount removes an account with its bills and charges.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	slog.Info("DeleteAccount request received", "account_id", id)

	err := s.store.WithTx(ctx, func(q storage.Session) error {
		existing, err := q.GetAccount(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if existing == nil {
			return ErrAccountNotFound
		}
		if err := q.DeleteAccount(ctx, id); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("DeleteAccount", err, "account_id", id)
		return err
	}

	slog.Info("Account deleted", "account_id", id)
	return nil
}

// UpdateAccount replaces the stored graph of account.ID with account.
func (s *AccountService) UpdateAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		logFailure("UpdateAccount", ErrNullAccount)
		return ErrNullAccount
	}

	slog.Info("UpdateAccount request received",
		"account_id", account.ID,
		"bills_count", len(account.Bills),
	)

	if !validAccount(account) {
		logFailure("UpdateAccount", ErrInvalidAccount, "account_id", account.ID)
		return ErrInvalidAccount
	}

	err := s.store.WithTx(ctx, func(q storage.Session) error {
		existing, err := q.GetAccount(ctx, account.ID)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if existing == nil {
			return ErrAccountNotFound
		}
		if err := q.UpdateAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("UpdateAccount", err, "account_id", account.ID)
		return err
	}

	slog.Info("Account updated", "account_id", account.ID)
	return nil
}

// GetAccountByID returns the full graph of one account.
func (s *AccountService) GetAccountByID(ctx context.Context, id int64) (*dto.AccountDTO, error) {
	slog.Info("GetAccountByID request received", "account_id", id)

	var account *models.Account
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		account, err = q.GetAccount(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if account == nil {
			return ErrNoResult
		}
		return nil
	})
	if err != nil {
		logFailure("GetAccountByID", err, "account_id", id)
		return nil, err
	}

	return dto.FromAccount(account), nil
}

// GetAllAccounts returns every account graph.
func (s *AccountService) GetAllAccounts(ctx context.Context) ([]*dto.AccountDTO, error) {
	slog.Info("GetAllAccounts request received")

	var accounts []*models.Account
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		accounts, err = q.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("GetAllAccounts", err)
		return nil, err
	}

	slog.Info("GetAllAccounts successful", "count", len(accounts))
	return dto.FromAccounts(accounts), nil
}

// GetAccountsWithOverdueBills returns the accounts owning at least one bill
// due before the current time, each with only its overdue bills.
func (s *AccountService) GetAccountsWithOverdueBills(ctx context.Context) ([]*dto.AccountDTO, error) {
	now := s.now().UTC()
	slog.Info("GetAccountsWithOverdueBills request received", "now", now)

	var accounts []*models.Account
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		accounts, err = q.AccountsWithOverdueBills(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to query overdue bills: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("GetAccountsWithOverdueBills", err)
		return nil, err
	}

	slog.Info("GetAccountsWithOverdueBills successful", "count", len(accounts))
	return dto.FromAccounts(accounts), nil
}
