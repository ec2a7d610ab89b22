package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeLine is one charge joined with the issue date of its bill.
// It is the raw row behind the monthly totals query.
type ChargeLine struct {
	IssueDate time.Time
	Amount    decimal.Decimal
	Tax       decimal.NullDecimal
}

// Total returns amount plus tax, counting a missing tax as zero.
func (l ChargeLine) Total() decimal.Decimal {
	if !l.Tax.Valid {
		return l.Amount
	}
	return l.Amount.Add(l.Tax.Decimal)
}

// MonthlyAmount is the total charged in one calendar month, across all years.
type MonthlyAmount struct {
	Month time.Month
	Total decimal.Decimal
}
