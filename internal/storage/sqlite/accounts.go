package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/gsdgroup/billing/internal/models"
)

const selectAccounts = "SELECT id, first_name, last_name FROM accounts"

// AddAccount inserts the account with every bill and charge it owns.
func (q *session) AddAccount(ctx context.Context, account *models.Account) (int64, error) {
	res, err := q.tx.ExecContext(ctx,
		"INSERT INTO accounts (first_name, last_name) VALUES (?, ?)",
		account.FirstName, account.LastName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read account id: %w", err)
	}
	q.onCommit(func() { account.ID = id })

	for _, bill := range account.Bills {
		bill.Account = account
		if _, err := q.insertBill(ctx, id, bill); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// UpdateAccount overwrites the names and replaces the bill graph of the account.
func (q *session) UpdateAccount(ctx context.Context, account *models.Account) error {
	_, err := q.tx.ExecContext(ctx,
		"UPDATE accounts SET first_name = ?, last_name = ? WHERE id = ?",
		account.FirstName, account.LastName, account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return q.replaceBills(ctx, account)
}

// DeleteAccount removes the account and cascades to its bills and their charges.
func (q *session) DeleteAccount(ctx context.Context, id int64) error {
	_, err := q.tx.ExecContext(ctx,
		"DELETE FROM bill_charges WHERE bill_id IN (SELECT id FROM bills WHERE account_id = ?)",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bill charges of account: %w", err)
	}

	if _, err := q.tx.ExecContext(ctx, "DELETE FROM bills WHERE account_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete bills of account: %w", err)
	}

	if _, err := q.tx.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// GetAccount retrieves an account by ID with all bills and charges.
// Returns nil when no account has that ID.
func (q *session) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	accounts, err := q.loadAccounts(ctx, billsOfAccount(id), selectAccounts+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil // Account not found
	}
	return accounts[0], nil
}

// ListAccounts retrieves every account with all bills and charges.
func (q *session) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return q.loadAccounts(ctx, allBills, selectAccounts+" ORDER BY id")
}

// AccountsWithOverdueBills retrieves the accounts owning a bill due before now.
// Only the overdue bills are attached.
func (q *session) AccountsWithOverdueBills(ctx context.Context, now time.Time) ([]*models.Account, error) {
	return q.loadAccounts(ctx, billsDueBefore(now), `
		SELECT DISTINCT a.id, a.first_name, a.last_name
		FROM accounts a
		JOIN bills b ON b.account_id = a.id
		WHERE b.due_date < ?
		ORDER BY a.id`,
		unixCeil(now),
	)
}
