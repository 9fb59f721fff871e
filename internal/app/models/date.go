package models

import (
	"emr-service/internal/pkg/constvars"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Date is a calendar date without time of day. It travels as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts "YYYY-MM-DD" and full RFC3339 timestamps, the latter
// being what browsers produce when serialising a date picker value.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(constvars.DateLayout, value); err == nil {
		return DateOf(parsed), nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return DateOf(parsed), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(constvars.DateLayout)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
