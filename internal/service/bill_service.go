package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gsdgroup/billing/internal/calculator"
	"github.com/gsdgroup/billing/internal/dto"
	"github.com/gsdgroup/billing/internal/models"
	"github.com/gsdgroup/billing/internal/storage"
	"github.com/gsdgroup/billing/internal/validate"
)

// BillService manages bills inside their owning accounts.
type BillService struct {
	store storage.Store
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{store: store}
}

// resolveOwner attaches bill to the account named by bill.AccountID and
// validates it. When replaceID is set, the stored copy of that bill is taken
// out of the owner first. An unknown account leaves the bill without an
// owner, which fails validation.
func resolveOwner(ctx context.Context, q storage.Session, bill *models.Bill, replaceID int64) error {
	owner, err := q.GetAccount(ctx, bill.AccountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	bill.Account = nil
	if owner != nil {
		for _, stored := range owner.Bills {
			if replaceID != 0 && stored.ID == replaceID {
				owner.RemoveBill(stored)
				break
			}
		}
		owner.AddBill(bill)
	}
	bill.Link()
	if !validate.ValidateBill(bill) {
		return ErrInvalidBill
	}
	return nil
}

// AddBill validates and stores a new bill under an existing account.
// It returns the generated bill ID.
func (s *BillService) AddBill(ctx context.Context, bill *models.Bill) (int64, error) {
	if bill == nil {
		logFailure("AddBill", ErrNullBill)
		return 0, ErrNullBill
	}

	slog.Info("AddBill request received",
		"account_id", bill.AccountID,
		"charges_count", len(bill.Charges),
	)

	if bill.AccountID == 0 {
		logFailure("AddBill", ErrMissingAccount)
		return 0, ErrMissingAccount
	}

	var id int64
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		if err := resolveOwner(ctx, q, bill, 0); err != nil {
			return err
		}

		var err error
		id, err = q.AddBill(ctx, bill)
		if err != nil {
			return fmt.Errorf("failed to add bill: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("AddBill", err, "account_id", bill.AccountID)
		return 0, err
	}

	slog.Info("Bill created", "bill_id", id, "account_id", bill.AccountID)
	return id, nil
}

// DeleteBill removes a bill with its charges.
func (s *BillService) DeleteBill(ctx context.Context, id int64) error {
	slog.Info("DeleteBill request received", "bill_id", id)

	err := s.store.WithTx(ctx, func(q storage.Session) error {
		existing, err := q.GetBill(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get bill: %w", err)
		}
		if existing == nil {
			return ErrBillNotFound
		}
		if err := q.DeleteBill(ctx, id); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("DeleteBill", err, "bill_id", id)
		return err
	}

	slog.Info("Bill deleted", "bill_id", id)
	return nil
}

// UpdateBill replaces the stored bill bill.ID, and its charges, with bill.
// The bill may move to another existing account.
func (s *BillService) UpdateBill(ctx context.Context, bill *models.Bill) error {
	if bill == nil {
		logFailure("UpdateBill", ErrNullBill)
		return ErrNullBill
	}

	slog.Info("UpdateBill request received",
		"bill_id", bill.ID,
		"account_id", bill.AccountID,
		"charges_count", len(bill.Charges),
	)

	if bill.AccountID == 0 {
		logFailure("UpdateBill", ErrMissingAccount, "bill_id", bill.ID)
		return ErrMissingAccount
	}

	err := s.store.WithTx(ctx, func(q storage.Session) error {
		existing, err := q.GetBill(ctx, bill.ID)
		if err != nil {
			return fmt.Errorf("failed to get bill: %w", err)
		}
		if existing == nil {
			return ErrBillNotFound
		}
		if err := resolveOwner(ctx, q, bill, existing.ID); err != nil {
			return err
		}
		if err := q.UpdateBill(ctx, bill); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("UpdateBill", err, "bill_id", bill.ID)
		return err
	}

	slog.Info("Bill updated", "bill_id", bill.ID)
	return nil
}

// GetBillByID returns one bill with its charges.
func (s *BillService) GetBillByID(ctx context.Context, id int64) (*dto.BillDTO, error) {
	slog.Info("GetBillByID request received", "bill_id", id)

	var bill *models.Bill
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		bill, err = q.GetBill(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get bill: %w", err)
		}
		if bill == nil {
			return ErrNoResult
		}
		return nil
	})
	if err != nil {
		logFailure("GetBillByID", err, "bill_id", id)
		return nil, err
	}

	return dto.FromBill(bill), nil
}

// GetAllBills returns every bill with its charges.
func (s *BillService) GetAllBills(ctx context.Context) ([]*dto.BillDTO, error) {
	slog.Info("GetAllBills request received")

	var bills []*models.Bill
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		bills, err = q.ListBills(ctx)
		if err != nil {
			return fmt.Errorf("failed to list bills: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("GetAllBills", err)
		return nil, err
	}

	slog.Info("GetAllBills successful", "count", len(bills))
	return dto.FromBills(bills), nil
}

// GetTotalChargedEachMonth returns amount plus tax charged per calendar month,
// January first, for the months that have charges.
func (s *BillService) GetTotalChargedEachMonth(ctx context.Context) ([]dto.MonthlyAmountDTO, error) {
	slog.Info("GetTotalChargedEachMonth request received")

	var lines []models.ChargeLine
	err := s.store.WithTx(ctx, func(q storage.Session) error {
		var err error
		lines, err = q.ChargeLines(ctx)
		if err != nil {
			return fmt.Errorf("failed to load charge lines: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure("GetTotalChargedEachMonth", err)
		return nil, err
	}

	totals := calculator.MonthlyTotals(lines)
	slog.Info("GetTotalChargedEachMonth successful", "charges", len(lines), "months", len(totals))
	return dto.FromMonthlyAmounts(totals), nil
}
