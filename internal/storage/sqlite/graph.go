package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/gsdgroup/billing/internal/models"
)

// billFilter restricts a graph load to a subset of bills.
// where is a constant SQL fragment over the bills table.
type billFilter struct {
	where string
	args  []any
}

var allBills = billFilter{where: "1 = 1"}

func billByID(id int64) billFilter {
	return billFilter{where: "id = ?", args: []any{id}}
}

func billsOfAccount(accountID int64) billFilter {
	return billFilter{where: "account_id = ?", args: []any{accountID}}
}

func billsDueBefore(now time.Time) billFilter {
	return billFilter{where: "due_date < ?", args: []any{unixCeil(now)}}
}

// loadAccounts runs an accounts query selecting (id, first_name, last_name)
// and attaches the bills matched by bills to their owners.
func (q *session) loadAccounts(ctx context.Context, bills billFilter, query string, args ...any) ([]*models.Account, error) {
	accounts, err := q.scanAccounts(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	byID := make(map[int64]*models.Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}

	loaded, err := q.loadBills(ctx, bills)
	if err != nil {
		return nil, err
	}
	for _, bill := range loaded {
		if owner, ok := byID[bill.AccountID]; ok {
			owner.AddBill(bill)
		}
	}

	return accounts, nil
}

func (q *session) scanAccounts(ctx context.Context, query string, args ...any) ([]*models.Account, error) {
	rows, err := q.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.FirstName, &account.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// loadBills reads the bills matched by f, ordered by ID, each with its charges.
// The Account back-reference is left for the caller to set.
func (q *session) loadBills(ctx context.Context, f billFilter) ([]*models.Bill, error) {
	rows, err := q.tx.QueryContext(ctx,
		"SELECT id, account_id, issue_date, due_date FROM bills WHERE "+f.where+" ORDER BY id",
		f.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	byID := make(map[int64]*models.Bill)
	for rows.Next() {
		var (
			bill        models.Bill
			issued, due int64
		)
		if err := rows.Scan(&bill.ID, &bill.AccountID, &issued, &due); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.IssueDate = fromUnix(issued)
		bill.DueDate = fromUnix(due)
		bills = append(bills, &bill)
		byID[bill.ID] = &bill
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	rows.Close()

	if len(bills) == 0 {
		return bills, nil
	}

	chargeRows, err := q.tx.QueryContext(ctx,
		"SELECT id, bill_id, charge_type, amount, tax FROM bill_charges WHERE bill_id IN (SELECT id FROM bills WHERE "+f.where+") ORDER BY id",
		f.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill charges: %w", err)
	}
	defer chargeRows.Close()

	for chargeRows.Next() {
		var (
			charge models.BillCharge
			billID int64
		)
		if err := chargeRows.Scan(&charge.ID, &billID, &charge.ChargeType, &charge.Amount, &charge.Tax); err != nil {
			return nil, fmt.Errorf("failed to scan bill charge: %w", err)
		}
		if bill, ok := byID[billID]; ok {
			bill.AddCharge(&charge)
		}
	}
	if err := chargeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill charges: %w", err)
	}

	return bills, nil
}

// insertBill writes bill and its charges under accountID.
// Any ID already on the bill or its charges is replaced by a generated one
// after commit.
func (q *session) insertBill(ctx context.Context, accountID int64, bill *models.Bill) (int64, error) {
	res, err := q.tx.ExecContext(ctx,
		"INSERT INTO bills (account_id, issue_date, due_date) VALUES (?, ?, ?)",
		accountID, toUnix(bill.IssueDate), toUnix(bill.DueDate),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert bill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read bill id: %w", err)
	}
	q.onCommit(func() {
		bill.ID = id
		bill.AccountID = accountID
	})

	for _, charge := range bill.Charges {
		charge.Bill = bill
		if err := q.insertCharge(ctx, id, charge); err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (q *session) insertCharge(ctx context.Context, billID int64, charge *models.BillCharge) error {
	res, err := q.tx.ExecContext(ctx,
		"INSERT INTO bill_charges (bill_id, charge_type, amount, tax) VALUES (?, ?, ?, ?)",
		billID, charge.ChargeType, models.Money(charge.Amount), models.NullMoney(charge.Tax),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill charge: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read bill charge id: %w", err)
	}
	q.onCommit(func() { charge.ID = id })
	return nil
}

// replaceBills makes the stored bills of account match account.Bills.
func (q *session) replaceBills(ctx context.Context, account *models.Account) error {
	existing, err := q.ids(ctx, "SELECT id FROM bills WHERE account_id = ?", account.ID)
	if err != nil {
		return fmt.Errorf("failed to list bills of account: %w", err)
	}

	kept := make(map[int64]bool, len(account.Bills))
	for _, bill := range account.Bills {
		if existing[bill.ID] {
			kept[bill.ID] = true
		}
	}
	for id := range existing {
		if !kept[id] {
			if err := q.deleteBillGraph(ctx, id); err != nil {
				return err
			}
		}
	}

	for _, bill := range account.Bills {
		bill.Account = account
		bill.AccountID = account.ID
		if kept[bill.ID] {
			if err := q.updateBillGraph(ctx, bill); err != nil {
				return err
			}
			continue
		}
		if _, err := q.insertBill(ctx, account.ID, bill); err != nil {
			return err
		}
	}

	return nil
}

// updateBillGraph overwrites the bill row and replaces its charges.
func (q *session) updateBillGraph(ctx context.Context, bill *models.Bill) error {
	_, err := q.tx.ExecContext(ctx,
		"UPDATE bills SET account_id = ?, issue_date = ?, due_date = ? WHERE id = ?",
		bill.AccountID, toUnix(bill.IssueDate), toUnix(bill.DueDate), bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	existing, err := q.ids(ctx, "SELECT id FROM bill_charges WHERE bill_id = ?", bill.ID)
	if err != nil {
		return fmt.Errorf("failed to list bill charges: %w", err)
	}

	kept := make(map[int64]bool, len(bill.Charges))
	for _, charge := range bill.Charges {
		if existing[charge.ID] {
			kept[charge.ID] = true
		}
	}
	for id := range existing {
		if !kept[id] {
			if _, err := q.tx.ExecContext(ctx, "DELETE FROM bill_charges WHERE id = ?", id); err != nil {
				return fmt.Errorf("failed to delete bill charge: %w", err)
			}
		}
	}

	for _, charge := range bill.Charges {
		charge.Bill = bill
		if !kept[charge.ID] {
			if err := q.insertCharge(ctx, bill.ID, charge); err != nil {
				return err
			}
			continue
		}
		_, err := q.tx.ExecContext(ctx,
			"UPDATE bill_charges SET charge_type = ?, amount = ?, tax = ? WHERE id = ?",
			charge.ChargeType, models.Money(charge.Amount), models.NullMoney(charge.Tax), charge.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update bill charge: %w", err)
		}
	}

	return nil
}

// deleteBillGraph removes one bill and its charges.
func (q *session) deleteBillGraph(ctx context.Context, id int64) error {
	if _, err := q.tx.ExecContext(ctx, "DELETE FROM bill_charges WHERE bill_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete bill charges: %w", err)
	}
	if _, err := q.tx.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}
