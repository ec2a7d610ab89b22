package models

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every stored amount carries.
const MoneyPlaces = 2

// Money normalizes d to MoneyPlaces using banker's rounding.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

// NullMoney normalizes a nullable amount, keeping a missing value missing.
func NullMoney(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(Money(d.Decimal))
}
