package dto

import (
	"strings"

	"github.com/gsdgroup/billing/internal/models"
)

// FromAccount converts an account graph. A nil account yields nil.
func FromAccount(account *models.Account) *AccountDTO {
	if account == nil {
		return nil
	}

	out := &AccountDTO{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Bills:     make([]*BillDTO, 0, len(account.Bills)),
	}
	for _, bill := range account.Bills {
		b := fromBill(bill)
		b.AccountID = account.ID
		b.Account = out
		out.Bills = append(out.Bills, b)
	}
	return out
}

// FromAccounts converts every account. The result is never nil.
func FromAccounts(accounts []*models.Account) []*AccountDTO {
	out := make([]*AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, FromAccount(account))
	}
	return out
}

// FromBill converts a bill with its charges. When the bill knows its owner the
// owner is attached, without its other bills, as the back-reference.
func FromBill(bill *models.Bill) *BillDTO {
	if bill == nil {
		return nil
	}

	out := fromBill(bill)
	if bill.Account != nil {
		out.AccountID = bill.Account.ID
		out.Account = &AccountDTO{
			ID:        bill.Account.ID,
			FirstName: bill.Account.FirstName,
			LastName:  bill.Account.LastName,
			Bills:     []*BillDTO{out},
		}
	}
	return out
}

// FromBills converts every bill. The result is never nil.
func FromBills(bills []*models.Bill) []*BillDTO {
	out := make([]*BillDTO, 0, len(bills))
	for _, bill := range bills {
		out = append(out, FromBill(bill))
	}
	return out
}

func fromBill(bill *models.Bill) *BillDTO {
	out := &BillDTO{
		ID:          bill.ID,
		IssueDate:   NewTimestamp(bill.IssueDate),
		DueDate:     NewTimestamp(bill.DueDate),
		AccountID:   bill.AccountID,
		BillCharges: make([]*BillChargeDTO, 0, len(bill.Charges)),
	}
	for _, charge := range bill.Charges {
		out.BillCharges = append(out.BillCharges, &BillChargeDTO{
			ID:         charge.ID,
			ChargeType: charge.ChargeType,
			Amount:     Amount{Decimal: charge.Amount},
			Tax:        NullAmount{NullDecimal: charge.Tax},
			Bill:       out,
		})
	}
	return out
}

// ToAccount builds an account graph with every back-reference set.
// Amounts are normalized with models.Money.
func (a *AccountDTO) ToAccount() *models.Account {
	if a == nil {
		return nil
	}

	account := &models.Account{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
	for _, b := range a.Bills {
		if b == nil {
			continue
		}
		account.AddBill(b.toBill())
	}
	return account
}

// ToAccount builds an account without bills.
func (a *SimpleAccountDTO) ToAccount() *models.Account {
	if a == nil {
		return nil
	}
	return &models.Account{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

// ToBill builds a bill with its charges. Only AccountID is set; resolving the
// owning Account is left to the caller.
func (b *BillDTO) ToBill() *models.Bill {
	if b == nil {
		return nil
	}
	return b.toBill()
}

func (b *BillDTO) toBill() *models.Bill {
	bill := &models.Bill{
		ID:        b.ID,
		IssueDate: b.IssueDate.Time,
		DueDate:   b.DueDate.Time,
		AccountID: b.AccountID,
	}
	for _, c := range b.BillCharges {
		if c == nil {
			continue
		}
		bill.AddCharge(&models.BillCharge{
			ID:         c.ID,
			ChargeType: c.ChargeType,
			Amount:     models.Money(c.Amount.Decimal),
			Tax:        models.NullMoney(c.Tax.NullDecimal),
		})
	}
	return bill
}

// FromMonthlyAmounts converts the monthly totals, naming each month in upper case.
func FromMonthlyAmounts(totals []models.MonthlyAmount) []MonthlyAmountDTO {
	out := make([]MonthlyAmountDTO, 0, len(totals))
	for _, m := range totals {
		out = append(out, MonthlyAmountDTO{
			Amount:    Amount{Decimal: m.Total},
			MonthName: strings.ToUpper(m.Month.String()),
		})
	}
	return out
}
