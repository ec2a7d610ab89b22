package sqlite

import (
	"context"
	"fmt"

	"github.com/gsdgroup/billing/internal/models"
)

// AddBill inserts the bill and its charges under bill.AccountID.
func (q *session) AddBill(ctx context.Context, bill *models.Bill) (int64, error) {
	return q.insertBill(ctx, bill.AccountID, bill)
}

// UpdateBill overwrites the bill row, including its owner, and replaces its charges.
func (q *session) UpdateBill(ctx context.Context, bill *models.Bill) error {
	return q.updateBillGraph(ctx, bill)
}

// DeleteBill removes the bill and its charges.
func (q *session) DeleteBill(ctx context.Context, id int64) error {
	return q.deleteBillGraph(ctx, id)
}

// GetBill retrieves a bill by ID with its charges and owning account.
// Returns nil when no bill has that ID.
func (q *session) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	bills, err := q.loadBills(ctx, billByID(id))
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, nil // Bill not found
	}

	if err := q.attachOwners(ctx, bills); err != nil {
		return nil, err
	}
	return bills[0], nil
}

// ListBills retrieves every bill with its charges and owning account.
func (q *session) ListBills(ctx context.Context) ([]*models.Bill, error) {
	bills, err := q.loadBills(ctx, allBills)
	if err != nil {
		return nil, err
	}
	if err := q.attachOwners(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// attachOwners points each bill at its account, loaded without other bills.
func (q *session) attachOwners(ctx context.Context, bills []*models.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	var (
		accounts []*models.Account
		err      error
	)
	if len(bills) == 1 {
		accounts, err = q.scanAccounts(ctx, selectAccounts+" WHERE id = ?", bills[0].AccountID)
	} else {
		accounts, err = q.scanAccounts(ctx, selectAccounts+" WHERE id IN (SELECT DISTINCT account_id FROM bills)")
	}
	if err != nil {
		return err
	}

	owners := make(map[int64]*models.Account, len(accounts))
	for _, account := range accounts {
		owners[account.ID] = account
	}
	for _, bill := range bills {
		bill.Account = owners[bill.AccountID]
	}
	return nil
}

// ChargeLines returns every charge with the issue date of its bill.
func (q *session) ChargeLines(ctx context.Context) ([]models.ChargeLine, error) {
	rows, err := q.tx.QueryContext(ctx, `
		SELECT b.issue_date, c.amount, c.tax
		FROM bill_charges c
		JOIN bills b ON b.id = c.bill_id
		ORDER BY b.issue_date, c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query charge lines: %w", err)
	}
	defer rows.Close()

	var lines []models.ChargeLine
	for rows.Next() {
		var (
			line   models.ChargeLine
			issued int64
		)
		if err := rows.Scan(&issued, &line.Amount, &line.Tax); err != nil {
			return nil, fmt.Errorf("failed to scan charge line: %w", err)
		}
		line.IssueDate = fromUnix(issued)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charge lines: %w", err)
	}

	return lines, nil
}
