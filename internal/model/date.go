package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// dateLayout is the wire format for all calendar dates.
const dateLayout = "2006-01-02"

// Date is a pure calendar date with no time-of-day or timezone semantics.
// It is parsed and serialized as "YYYY-MM-DD" and must never be interpreted
// as a UTC-midnight instant: that shifts the effective day in non-UTC
// timezones. Internally it is pinned to midnight in the local location.
type Date struct {
	t time.Time
}

// ParseDate parses a "YYYY-MM-DD" string as a local calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DateOf truncates an instant to its local calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.In(time.Local).Date()
	return NewDate(y, m, d)
}

// Today resolves the current local calendar date. Callers resolve it once
// per operation and pass it explicitly into predicates and aggregations so
// one logical operation never straddles a day boundary.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) String() string { return d.t.Format(dateLayout) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Year() == other.t.Year() && d.t.YearDay() == other.t.YearDay()
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d falls after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Time exposes the underlying local-midnight instant.
func (d Date) Time() time.Time { return d.t }

// ── JSON ──

// MarshalJSON emits the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date JSON %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ── GORM / database ──

// Scan reads a DATE column. Drivers hand back either a time.Time or the
// raw "YYYY-MM-DD" text; both are reduced to the calendar day.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		y, m, day := v.Date()
		*d = NewDate(y, m, day)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

// Value serializes the date as "YYYY-MM-DD" text for the driver.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
