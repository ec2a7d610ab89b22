package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is owned by exactly one Account once persisted.
type Bill struct {
	// ID is assigned by storage on creation. Zero means not yet persisted.
	ID int64

	IssueDate time.Time `validate:"required"`
	DueDate   time.Time `validate:"required"`

	// AccountID references the owning account. It is what callers supply;
	// Account is resolved from it by the service layer.
	AccountID int64 `validate:"-"`

	// Account is the non-owning back-reference to the owner.
	Account *Account `validate:"required"`

	// Charges are owned by the bill and removed with it.
	Charges []*BillCharge `validate:"-"`
}

// AddCharge appends charge to the bill and points its back-reference at b.
func (b *Bill) AddCharge(charge *BillCharge) {
	b.Charges = append(b.Charges, charge)
	charge.Bill = b
}

// Link points the back-reference of every charge at b.
func (b *Bill) Link() {
	for _, charge := range b.Charges {
		charge.Bill = b
	}
}

// BillCharge is a single line on a bill.
type BillCharge struct {
	ID         int64
	ChargeType string

	// Amount and Tax are fixed-point; see Money.
	Amount decimal.Decimal
	Tax    decimal.NullDecimal

	// Bill is the non-owning back-reference to the owner.
	Bill *Bill `validate:"-"`
}
