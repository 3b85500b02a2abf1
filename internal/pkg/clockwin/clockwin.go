// Package clockwin holds the wall-clock and weekday primitives the scheduling
// core is built on: HH:MM clock values, half-open day windows and the fixed
// Sunday=0..Saturday=6 weekday ordering every stored row relies on.
package clockwin

import (
	"fmt"
	"regexp"
	"time"
)

// Clock is a local wall time (hour and minute), no date and no zone attached.
type Clock struct {
	H int
	M int
}

// Window is a [Start, End) wall-clock window within a single day.
type Window struct {
	Start Clock
	End   Clock
}

// Weekday uses the Sunday=0 .. Saturday=6 ordering. Stored rows keep the
// ordinal, so this mapping must never change.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY",
}

const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ParseClock parses a strict 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	var c Clock
	fmt.Sscanf(s, "%02d:%02d", &c.H, &c.M)
	return c, nil
}

// MustClock is for constants in tests and fixtures; panics on bad input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Minutes() int { return c.H*60 + c.M }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.H, c.M) }

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool { return c.Minutes() < other.Minutes() }

// ParseWindow parses a start and end clock pair and checks start < end.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if !s.Before(e) {
		return Window{}, fmt.Errorf("start time %s must be before end time %s", s, e)
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open windows intersect. A window ending
// exactly when another starts does not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Minutes() < other.End.Minutes() && other.Start.Minutes() < w.End.Minutes()
}

// ParseWeekday accepts the canonical upper-case weekday symbols.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if s == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func (d Weekday) Valid() bool { return d >= Sunday && d <= Saturday }

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("WEEKDAY(%d)", int(d))
	}
	return weekdayNames[d]
}

// WeekdayOf maps a calendar date onto the Sunday=0 ordering. time.Weekday
// already counts Sunday as 0, so the cast is the whole mapping.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// ParseDate parses a "YYYY-MM-DD" calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// MustDate is ParseDate for literals; it panics on malformed input.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
