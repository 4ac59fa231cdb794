package week

import "time"

// DateLayout is the wire and storage format for attribution days.
const DateLayout = "2006-01-02"

// DayOf returns the calendar day of t as midnight UTC. The year, month and day
// are read in t's own location, so a local 23:30 stays on its local date.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOf returns the Monday of the week containing t.
func StartOf(t time.Time) time.Time {
	day := DayOf(t)
	offset := int(day.Weekday())
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, -offset+1)
}

// Range returns the inclusive Monday..Sunday range of the week containing t.
func Range(t time.Time) (time.Time, time.Time) {
	start := StartOf(t)
	return start, start.AddDate(0, 0, 6)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// FormatDate renders the calendar day of t.
func FormatDate(t time.Time) string {
	return DayOf(t).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD day.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
