package types

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk format of every date column.
const DateLayout = "2006-01-02"

// Date is a calendar date stored as YYYY-MM-DD. The string form sorts in
// chronological order, so dates compare with plain string comparison.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(s), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// Valid reports whether d is a well-formed date.
func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

func (d Date) String() string { return string(d) }

// DatePtr returns a pointer to d, for nullable date fields.
func DatePtr(d Date) *Date { return &d }
