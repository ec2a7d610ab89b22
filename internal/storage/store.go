// Package storage provides abstractions for persistent data storage.
package storage

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/gsdgroup/billing/internal/storage Store,Session

import (
	"context"
	"time"

	"github.com/gsdgroup/billing/internal/models"
)

// Store hands out persistence sessions.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// WithTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back on any error or panic. The Session must not be
	// retained after fn returns.
	WithTx(ctx context.Context, fn func(Session) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Session is the persistence context of one logical operation.
// Lookups of missing rows return nil without an error and deletes of missing
// rows are no-ops; callers decide what absence means.
type Session interface {
	AccountGateway
	BillGateway
}

// AccountGateway persists Account aggregates.
type AccountGateway interface {
	// AddAccount inserts the account with its bills and charges and returns the
	// new account ID. Generated IDs are written back into the graph only after
	// the transaction commits.
	AddAccount(ctx context.Context, account *models.Account) (int64, error)

	// UpdateAccount overwrites the account row and replaces its bill graph.
	UpdateAccount(ctx context.Context, account *models.Account) error

	// DeleteAccount removes the account, its bills and their charges.
	DeleteAccount(ctx context.Context, id int64) error

	// GetAccount loads the full graph of one account.
	GetAccount(ctx context.Context, id int64) (*models.Account, error)

	// ListAccounts loads every account graph, ordered by ID.
	ListAccounts(ctx context.Context) ([]*models.Account, error)

	// AccountsWithOverdueBills returns the accounts having at least one bill due
	// strictly before now. Each account carries only its overdue bills.
	AccountsWithOverdueBills(ctx context.Context, now time.Time) ([]*models.Account, error)
}

// BillGateway persists Bills, always inside their owning account.
type BillGateway interface {
	// AddBill inserts the bill with its charges under bill.AccountID and returns
	// the new bill ID. Generated IDs are written back after commit.
	AddBill(ctx context.Context, bill *models.Bill) (int64, error)

	// UpdateBill overwrites the bill row and replaces its charges.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes the bill and its charges.
	DeleteBill(ctx context.Context, id int64) error

	// GetBill loads one bill with its charges and owning account.
	GetBill(ctx context.Context, id int64) (*models.Bill, error)

	// ListBills loads every bill, ordered by ID.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// ChargeLines returns every charge joined with its bill's issue date.
	ChargeLines(ctx context.Context) ([]models.ChargeLine, error)
}
