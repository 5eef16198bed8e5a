package sun

import "time"

// CalendarDay is a UTC calendar date with no time-of-day component. The
// reference instant for a calculation is the day's start, 00:00 UTC.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) CalendarDay {
	y, m, d := t.UTC().Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// Start returns the day's first instant, 00:00 UTC.
func (d CalendarDay) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar day.
func (d CalendarDay) Next() CalendarDay {
	return DayOf(d.Start().AddDate(0, 0, 1))
}

// Before reports whether d precedes other.
func (d CalendarDay) Before(other CalendarDay) bool {
	return d.Start().Before(other.Start())
}

// String formats the day as an ISO date, e.g. "2024-06-20".
func (d CalendarDay) String() string {
	return d.Start().Format(time.DateOnly)
}
