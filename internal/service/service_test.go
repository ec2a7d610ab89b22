package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsdgroup/billing/internal/models"
	"github.com/gsdgroup/billing/internal/storage/sqlite"
)

// setupServices opens a fresh database and wires both services to it.
func setupServices(t *testing.T) (*AccountService, *BillService) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	return NewAccountService(store), NewBillService(store)
}

func date(s string) time.Time {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		panic(err)
	}
	return t
}

func charge(amount, tax int64) *models.BillCharge {
	return &models.BillCharge{
		ChargeType: "Test",
		Amount:     decimal.NewFromInt(amount),
		Tax:        decimal.NewNullDecimal(decimal.NewFromInt(tax)),
	}
}

func newAccount() *models.Account {
	return &models.Account{FirstName: "TestFirstName", LastName: "TestLastName"}
}

func accountWithBills(due ...string) *models.Account {
	account := newAccount()
	for _, d := range due {
		account.AddBill(&models.Bill{IssueDate: date("01/01/2024"), DueDate: date(d)})
	}
	return account
}

func TestAddAccount(t *testing.T) {
	accounts, _ := setupServices(t)
	ctx := context.Background()

	t.Run("round-trips names", func(t *testing.T) {
		id, err := accounts.AddAccount(ctx, newAccount())
		require.NoError(t, err)
		assert.Positive(t, id)

		got, err := accounts.GetAccountByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "TestFirstName", got.FirstName)
		assert.Equal(t, "TestLastName", got.LastName)
	})

	t.Run("nil account", func(t *testing.T) {
		_, err := accounts.AddAccount(ctx, nil)
		require.ErrorIs(t, err, ErrNullAccount)
		assert.Contains(t, err.Error(), "account entity cannot be null")
	})

	t.Run("missing names", func(t *testing.T) {
		for _, a := range []*models.Account{
			{LastName: "TestLastName"},
			{FirstName: "TestFirstName"},
			{},
		} {
			_, err := accounts.AddAccount(ctx, a)
			require.ErrorIs(t, err, ErrInvalidAccount)
			assert.NotEqual(t, ErrNullAccount.Error(), err.Error())
		}
	})

	t.Run("invalid owned bill rejects the account", func(t *testing.T) {
		account := newAccount()
		account.AddBill(&models.Bill{IssueDate: date("01/01/2024")})

		_, err := accounts.AddAccount(ctx, account)
		require.ErrorIs(t, err, ErrInvalidAccount)
	})

	t.Run("cascades bills and charges", func(t *testing.T) {
		account := accountWithBills("01/02/2024")
		account.Bills[0].AddCharge(charge(10, 1))

		id, err := accounts.AddAccount(ctx, account)
		require.NoError(t, err)

		got, err := accounts.GetAccountByID(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Bills, 1)
		require.Len(t, got.Bills[0].BillCharges, 1)
		assert.Equal(t, id, got.Bills[0].AccountID)
	})
}

func TestDeleteAccount(t *testing.T) {
	accounts, bills := setupServices(t)
	ctx := context.Background()

	account := accountWithBills("01/02/2024")
	account.Bills[0].AddCharge(charge(10, 10))
	id, err := accounts.AddAccount(ctx, account)
	require.NoError(t, err)
	billID := account.Bills[0].ID

	require.NoError(t, accounts.DeleteAccount(ctx, id))

	_, err = accounts.GetAccountByID(ctx, id)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = bills.GetBillByID(ctx, billID)
	require.ErrorIs(t, err, ErrNoResult)

	totals, err := bills.GetTotalChargedEachMonth(ctx)
	require.NoError(t, err)
	assert.Empty(t, totals)

	t.Run("unknown account", func(t *testing.T) {
		err := accounts.DeleteAccount(ctx, id)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestUpdateAccount(t *testing.T) {
	accounts, _ := setupServices(t)
	ctx := context.Background()

	account := accountWithBills("01/02/2024", "01/03/2024")
	id, err := accounts.AddAccount(ctx, account)
	require.NoError(t, err)

	t.Run("overwrites the whole graph", func(t *testing.T) {
		updated := &models.Account{ID: id, FirstName: "New", LastName: "Name"}
		updated.AddBill(&models.Bill{ID: account.Bills[1].ID, IssueDate: date("05/05/2024"), DueDate: date("06/06/2024")})

		require.NoError(t, accounts.UpdateAccount(ctx, updated))

		got, err := accounts.GetAccountByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "New", got.FirstName)
		require.Len(t, got.Bills, 1)
		assert.Equal(t, account.Bills[1].ID, got.Bills[0].ID)
		assert.True(t, date("06/06/2024").Equal(got.Bills[0].DueDate.Time))
	})

	t.Run("nil account", func(t *testing.T) {
		require.ErrorIs(t, accounts.UpdateAccount(ctx, nil), ErrNullAccount)
	})

	t.Run("invalid account", func(t *testing.T) {
		require.ErrorIs(t, accounts.UpdateAccount(ctx, &models.Account{ID: id, FirstName: "x"}), ErrInvalidAccount)
	})

	t.Run("unknown account", func(t *testing.T) {
		err := accounts.UpdateAccount(ctx, &models.Account{ID: id + 100, FirstName: "a", LastName: "b"})
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestGetAllAccounts(t *testing.T) {
	accounts, _ := setupServices(t)
	ctx := context.Background()

	all, err := accounts.GetAllAccounts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for range 3 {
		_, err := accounts.AddAccount(ctx, newAccount())
		require.NoError(t, err)
	}

	all, err = accounts.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)
}

func TestGetAccountsWithOverdueBills(t *testing.T) {
	accounts, _ := setupServices(t)
	ctx := context.Background()
	accounts.now = func() time.Time { return date("15/06/2024") }

	overdueID, err := accounts.AddAccount(ctx, accountWithBills("14/06/2024", "30/06/2024"))
	require.NoError(t, err)
	_, err = accounts.AddAccount(ctx, accountWithBills("16/06/2024"))
	require.NoError(t, err)
	_, err = accounts.AddAccount(ctx, accountWithBills("15/06/2024"))
	require.NoError(t, err)
	_, err = accounts.AddAccount(ctx, newAccount())
	require.NoError(t, err)

	got, err := accounts.GetAccountsWithOverdueBills(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, overdueID, got[0].ID)
	require.Len(t, got[0].Bills, 1)
	assert.True(t, date("14/06/2024").Equal(got[0].Bills[0].DueDate.Time))

	t.Run("follows the clock", func(t *testing.T) {
		accounts.now = func() time.Time { return date("01/01/2000") }
		got, err := accounts.GetAccountsWithOverdueBills(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("bill due earlier within the same second", func(t *testing.T) {
		due := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
		account := newAccount()
		account.AddBill(&models.Bill{IssueDate: date("01/01/2024"), DueDate: due})
		id, err := accounts.AddAccount(ctx, account)
		require.NoError(t, err)

		accounts.now = func() time.Time { return due.Add(500 * time.Millisecond) }
		got, err := accounts.GetAccountsWithOverdueBills(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, id, got[0].ID)

		accounts.now = func() time.Time { return due }
		got, err = accounts.GetAccountsWithOverdueBills(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAddBill(t *testing.T) {
	accounts, bills := setupServices(t)
	ctx := context.Background()

	accountID, err := accounts.AddAccount(ctx, newAccount())
	require.NoError(t, err)

	t.Run("stores the bill under its account", func(t *testing.T) {
		bill := &models.Bill{AccountID: accountID, IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")}
		bill.AddCharge(charge(10, 2))

		id, err := bills.AddBill(ctx, bill)
		require.NoError(t, err)
		assert.Positive(t, id)

		got, err := bills.GetBillByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, accountID, got.AccountID)
		require.Len(t, got.BillCharges, 1)

		account, err := accounts.GetAccountByID(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, account.Bills, 1)
		assert.Equal(t, id, account.Bills[0].ID)
	})

	t.Run("bill without charges is valid", func(t *testing.T) {
		_, err := bills.AddBill(ctx, &models.Bill{AccountID: accountID, IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")})
		require.NoError(t, err)
	})

	t.Run("nil bill", func(t *testing.T) {
		_, err := bills.AddBill(ctx, nil)
		require.ErrorIs(t, err, ErrNullBill)
	})

	t.Run("missing account id", func(t *testing.T) {
		_, err := bills.AddBill(ctx, &models.Bill{IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")})
		require.ErrorIs(t, err, ErrMissingAccount)
		assert.Equal(t, "Missing account id.", err.Error())
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := bills.AddBill(ctx, &models.Bill{AccountID: accountID + 100, IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")})
		require.ErrorIs(t, err, ErrInvalidBill)
	})

	t.Run("missing dates", func(t *testing.T) {
		_, err := bills.AddBill(ctx, &models.Bill{AccountID: accountID, IssueDate: date("01/01/2024")})
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Bill entity validation error.", validation.Message)
	})
}

func TestUpdateAndDeleteBill(t *testing.T) {
	accounts, bills := setupServices(t)
	ctx := context.Background()

	first, err := accounts.AddAccount(ctx, newAccount())
	require.NoError(t, err)
	second, err := accounts.AddAccount(ctx, newAccount())
	require.NoError(t, err)

	bill := &models.Bill{AccountID: first, IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")}
	bill.AddCharge(charge(1, 1))
	billID, err := bills.AddBill(ctx, bill)
	require.NoError(t, err)

	t.Run("moves the bill and replaces charges", func(t *testing.T) {
		updated := &models.Bill{ID: billID, AccountID: second, IssueDate: date("02/01/2024"), DueDate: date("02/02/2024")}
		updated.AddCharge(charge(5, 0))
		updated.AddCharge(charge(6, 0))
		require.NoError(t, bills.UpdateBill(ctx, updated))

		got, err := bills.GetBillByID(ctx, billID)
		require.NoError(t, err)
		assert.Equal(t, second, got.AccountID)
		assert.Len(t, got.BillCharges, 2)

		old, err := accounts.GetAccountByID(ctx, first)
		require.NoError(t, err)
		assert.Empty(t, old.Bills)
	})

	t.Run("update of unknown bill", func(t *testing.T) {
		err := bills.UpdateBill(ctx, &models.Bill{ID: billID + 100, AccountID: first, IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")})
		require.ErrorIs(t, err, ErrBillNotFound)
	})

	t.Run("update to unknown account", func(t *testing.T) {
		err := bills.UpdateBill(ctx, &models.Bill{ID: billID, AccountID: second + 100, IssueDate: date("01/01/2024"), DueDate: date("01/02/2024")})
		require.ErrorIs(t, err, ErrInvalidBill)
	})

	t.Run("update nil and without account", func(t *testing.T) {
		require.ErrorIs(t, bills.UpdateBill(ctx, nil), ErrNullBill)
		require.ErrorIs(t, bills.UpdateBill(ctx, &models.Bill{ID: billID}), ErrMissingAccount)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, bills.DeleteBill(ctx, billID))

		_, err := bills.GetBillByID(ctx, billID)
		require.ErrorIs(t, err, ErrNoResult)

		require.ErrorIs(t, bills.DeleteBill(ctx, billID), ErrBillNotFound)
	})
}

func TestGetAllBills(t *testing.T) {
	accounts, bills := setupServices(t)
	ctx := context.Background()

	all, err := bills.GetAllBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = accounts.AddAccount(ctx, accountWithBills("01/02/2024", "01/03/2024"))
	require.NoError(t, err)

	all, err = bills.GetAllBills(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, b := range all {
		require.NotNil(t, b.Account)
		assert.Equal(t, "TestFirstName", b.Account.FirstName)
	}
}

func TestGetTotalChargedEachMonth(t *testing.T) {
	accounts, bills := setupServices(t)
	ctx := context.Background()

	account := newAccount()
	december := &models.Bill{IssueDate: date("31/12/1998"), DueDate: date("31/12/1998")}
	december.AddCharge(charge(10, 10))
	december.AddCharge(charge(10, 10))
	october := &models.Bill{IssueDate: date("31/10/1998"), DueDate: date("31/12/1998")}
	october.AddCharge(charge(10, 10))
	empty := &models.Bill{IssueDate: date("01/01/1999"), DueDate: date("31/12/1999")}
	account.AddBill(december)
	account.AddBill(october)
	account.AddBill(empty)

	_, err := accounts.AddAccount(ctx, account)
	require.NoError(t, err)

	totals, err := bills.GetTotalChargedEachMonth(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "OCTOBER", totals[0].MonthName)
	assert.True(t, decimal.NewFromInt(20).Equal(totals[0].Amount.Decimal))
	assert.Equal(t, "DECEMBER", totals[1].MonthName)
	assert.True(t, decimal.NewFromInt(40).Equal(totals[1].Amount.Decimal))
}
