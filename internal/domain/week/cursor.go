package week

import "time"

// Cursor holds the week currently being viewed. The anchor is always the
// Monday of that week at midnight.
type Cursor struct {
	start time.Time
}

// NewCursor returns a cursor on the week containing date.
func NewCursor(date time.Time) *Cursor {
	return &Cursor{start: StartOf(date)}
}

// SetWeek moves the cursor to the week containing date.
func (c *Cursor) SetWeek(date time.Time) {
	c.start = StartOf(date)
}

// NextWeek advances the cursor by seven days.
func (c *Cursor) NextWeek() {
	c.start = c.start.AddDate(0, 0, 7)
}

// PreviousWeek moves the cursor back by seven days.
func (c *Cursor) PreviousWeek() {
	c.start = c.start.AddDate(0, 0, -7)
}

// WeekStart returns the Monday the cursor is anchored on.
func (c *Cursor) WeekStart() time.Time {
	return c.start
}

// CurrentWeekRange returns the inclusive [Monday, Sunday] range.
func (c *Cursor) CurrentWeekRange() (time.Time, time.Time) {
	return c.start, c.start.AddDate(0, 0, 6)
}

// Days returns the seven days of the viewed week in order.
func (c *Cursor) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = c.start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether date falls inside the viewed week.
func (c *Cursor) Contains(date time.Time) bool {
	day := DayOf(date)
	start, end := c.CurrentWeekRange()
	return !day.Before(start) && !day.After(end)
}
