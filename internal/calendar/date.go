// Package calendar provides the civil date used for observations. A Date is a
// day in the caregiver's local calendar, not an instant.
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire and storage format of a Date.
const Layout = "2006-01-02"

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the normalized Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the Date on which t falls in t's location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date in loc.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Of(time.Now().In(loc))
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Of(t), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// midnight anchors d at 00:00 UTC so day arithmetic never crosses a DST edge.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Of(d.midnight().AddDate(0, 0, n))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

// DaysSince returns the number of days from o to d.
func (d Date) DaysSince(o Date) int {
	return int(d.midnight().Sub(o.midnight()).Hours() / 24)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// WeekNumber is ceil(days since Jan 1 / 7). Jan 1 itself is week 0 and the
// following seven days are week 1. It is not ISO week numbering.
func (d Date) WeekNumber() int {
	days := d.DaysSince(New(d.Year, time.January, 1))
	return (days + 6) / 7
}

// MarshalJSON encodes d as a YYYY-MM-DD string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string. null and "" leave d zero.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores d as text so lexical order matches date order on every driver.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads a date column stored as text or as a native DATE.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = Of(v)
		return nil
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(Layout) {
		s = s[:len(Layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType maps Date to a text column.
func (Date) GormDataType() string {
	return "string"
}
