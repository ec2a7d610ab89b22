package dto

import "github.com/shopspring/decimal"

// Amount is a decimal that encodes as a bare JSON number. It decodes from a
// number or a quoted string.
type Amount struct {
	decimal.Decimal
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// NullAmount is an Amount that may be missing. A missing value encodes as null.
type NullAmount struct {
	decimal.NullDecimal
}

func (a NullAmount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

func (a *NullAmount) UnmarshalJSON(data []byte) error {
	return a.NullDecimal.UnmarshalJSON(data)
}
