package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of every date, always in UTC.
const DateLayout = "02/01/2006T15:04:05"

// Timestamp is a time.Time that encodes as DateLayout.
// The zero value encodes as null, and null or "" decode to the zero value.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in the form dd/MM/yyyyTHH:mm:ss: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected dd/MM/yyyyTHH:mm:ss", s)
	}
	t.Time = parsed
	return nil
}
