package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date without a time component
// =============================================================================

// Date is a calendar date. All instants derived from it are UTC.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of an instant.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// At combines the date with a clock time into a UTC instant.
func (d Date) At(c ClockTime) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, time.UTC)
}

// Time returns midnight of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date           { return DateOf(d.Time().AddDate(0, 0, n)) }
func (d Date) Weekday() time.Weekday        { return d.Time().Weekday() }
func (d Date) Before(other Date) bool       { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool        { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool        { return d == other }
func (d Date) String() string               { return d.Time().Format("2006-01-02") }

// InclusiveDays counts calendar days between two dates, both endpoints
// included. Same start and end date yields 1.
func InclusiveDays(start, end Date) int {
	return int(end.Time().Sub(start.Time()).Hours()/24) + 1
}

// =============================================================================
// CLOCK TIME - Wall-clock time of day
// =============================================================================

// ClockTime is a wall-clock time of day, serialized as "HH:MM".
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
